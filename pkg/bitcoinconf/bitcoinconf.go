// Package bitcoinconf reads bitcoin.conf files and flattens them into the
// single-line form embedded in the bitcoin_config GraphML attribute.
//
// bitcoin.conf looks like INI but is not: global "key=value" lines, optional
// [section] headers for chain-specific settings (main, test, signet,
// regtest), keys that may repeat (addnode, connect, rpcauth) and "#"
// comments that may follow a value. File order is preserved.
package bitcoinconf

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/warnet/warcli/pkg/errors"
)

// Entry is a single key=value line.
type Entry struct {
	Key   string
	Value string
}

// Section is a [name] block. The global block before the first header has
// an empty Name.
type Section struct {
	Name    string
	Entries []Entry
}

// Conf is a parsed bitcoin.conf in file order.
type Conf struct {
	sections []Section
}

// Sections returns the parsed sections, global section first.
func (c *Conf) Sections() []Section { return c.sections }

// Global returns the entries that precede the first section header.
func (c *Conf) Global() []Entry {
	for _, s := range c.sections {
		if s.Name == "" {
			return s.Entries
		}
	}
	return nil
}

// Section returns the first section called name and true, or false if it
// is absent.
func (c *Conf) Section(name string) (Section, bool) {
	for _, s := range c.sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Parse reads the bitcoin.conf at path.
func Parse(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "bitcoin conf %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read bitcoin conf %s", path)
	}
	return ParseBytes(data)
}

// whitespace matches the characters bitcoind trims around names and values.
const whitespace = " \f\n\r\t\v"

// ParseBytes parses bitcoin.conf content with bitcoind's rules: "#" starts a
// comment anywhere on a line, ";" is an ordinary character, and every line
// is kept in file order. A repeated [section] header opens a new Section.
func ParseBytes(data []byte) (*Conf, error) {
	conf := &Conf{}
	cur := Section{}
	flush := func() {
		if cur.Name != "" || len(cur.Entries) > 0 {
			conf.sections = append(conf.sections, cur)
		}
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		hasComment := false
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line, hasComment = line[:i], true
		}
		line = strings.Trim(line, whitespace)

		switch {
		case line == "":
		case line[0] == '[' && line[len(line)-1] == ']':
			flush()
			cur = Section{Name: line[1 : len(line)-1]}
		case line[0] == '-':
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"bitcoin conf line %d: %s, options must be specified without leading -", lineNo, line)
		default:
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidConfig, "bitcoin conf line %d: %s, expected key=value", lineNo, line)
			}
			key = strings.Trim(key, whitespace)
			if hasComment && strings.Contains(key, "rpcpassword") {
				return nil, errors.New(errors.ErrCodeInvalidConfig,
					"bitcoin conf line %d: using # in rpcpassword can be ambiguous and should be avoided", lineNo)
			}
			cur.Entries = append(cur.Entries, Entry{Key: key, Value: strings.Trim(value, whitespace)})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse bitcoin conf")
	}
	flush()
	return conf, nil
}

// Dump flattens conf into one line: global entries first as key=value, then
// each named section as [name] followed by its entries, all joined by ",".
func Dump(conf *Conf) string {
	if conf == nil {
		return ""
	}
	var parts []string
	for _, s := range conf.sections {
		if s.Name != "" {
			parts = append(parts, "["+s.Name+"]")
		}
		for _, e := range s.Entries {
			parts = append(parts, fmt.Sprintf("%s=%s", e.Key, e.Value))
		}
	}
	return strings.Join(parts, ",")
}

// Format returns the flattened form of the file at path, or "" when path
// is empty.
func Format(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	conf, err := Parse(path)
	if err != nil {
		return "", err
	}
	return Dump(conf), nil
}
