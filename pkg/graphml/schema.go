package graphml

import (
	"slices"
	"strconv"
)

// DefaultVersion is the node software version used when none is given.
const DefaultVersion = "26.0"

// Attribute types understood by GraphML consumers.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
)

// Attribute is a per-node GraphML attribute declaration.
type Attribute struct {
	Name string // used as both attr.name and id
	Type string // TypeString or TypeBoolean

	value func(Values) string
}

// Values holds the per-node attribute values. The same values are attached
// to every node of a document.
type Values struct {
	Version       string // empty means DefaultVersion
	BitcoinConfig string // flattened bitcoin.conf, see package bitcoinconf
	TcNetem       string
	BuildArgs     string
	Exporter      bool
	CollectLogs   bool
	Image         string
}

var schema = []Attribute{
	{Name: "version", Type: TypeString, value: func(v Values) string { return v.Version }},
	{Name: "bitcoin_config", Type: TypeString, value: func(v Values) string { return v.BitcoinConfig }},
	{Name: "tc_netem", Type: TypeString, value: func(v Values) string { return v.TcNetem }},
	{Name: "build_args", Type: TypeString, value: func(v Values) string { return v.BuildArgs }},
	{Name: "exporter", Type: TypeBoolean, value: func(v Values) string { return strconv.FormatBool(v.Exporter) }},
	{Name: "collect_logs", Type: TypeBoolean, value: func(v Values) string { return strconv.FormatBool(v.CollectLogs) }},
	{Name: "image", Type: TypeString, value: func(v Values) string { return v.Image }},
}

// Schema returns the node attribute declarations in document order.
func Schema() []Attribute { return slices.Clone(schema) }

// KeyNames returns the attribute names in document order.
func KeyNames() []string {
	names := make([]string, len(schema))
	for i, a := range schema {
		names[i] = a.Name
	}
	return names
}

// WithDefaults returns v with an empty Version replaced by DefaultVersion.
func (v Values) WithDefaults() Values {
	if v.Version == "" {
		v.Version = DefaultVersion
	}
	return v
}

// resolve renders v as one text value per schema entry.
func (v Values) resolve() []string {
	v = v.WithDefaults()
	out := make([]string, len(schema))
	for i, a := range schema {
		out[i] = a.value(v)
	}
	return out
}
