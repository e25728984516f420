package parsers

/**
 * statblock.go - interface statistics text parser
 */

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/yyyar/trafficplot/stats/counters"
)

/**
 * Default patterns in priority order
 */
var DEFAULT_STATBLOCK_PATTERNS = []string{
	// net-tools 1.x: "RX bytes:1000 (1.0 KB)  TX bytes:200 (200.0 B)"
	`RX bytes:(?P<rx>[0-9]+).+TX bytes:(?P<tx>[0-9]+)`,
	// net-tools 2.x: "RX packets 10  bytes 1000 (1.0 KB)"
	`RX .+ bytes (?P<rx>[0-9]+)`,
	// net-tools 2.x: "TX packets 5  bytes 200 (200.0 B)"
	`TX .+ bytes (?P<tx>[0-9]+)`,
	// net-tools 1.x split: "RX bytes:1000 (1.0 KB)" and "TX bytes:200 (200.0 B)"
	`RX bytes:(?P<rx>[0-9]+)`,
	`TX bytes:(?P<tx>[0-9]+)`,
}

var ErrNoFieldGroup = errors.New("pattern has neither rx nor tx group")

/**
 * Line pattern extracting rx and/or tx
 */
type Pattern struct {
	re *regexp.Regexp
	rx int
	tx int
}

/**
 * Match result, fields are nil when not captured
 */
type Fields struct {
	Rx *uint64
	Tx *uint64
}

/**
 * Compile pattern with named groups "rx" and/or "tx"
 */
func CompilePattern(expr string) (*Pattern, error) {

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}

	p := &Pattern{re: re, rx: re.SubexpIndex("rx"), tx: re.SubexpIndex("tx")}
	if p.rx < 0 && p.tx < 0 {
		return nil, fmt.Errorf("pattern %q: %w", expr, ErrNoFieldGroup)
	}

	return p, nil
}

/**
 * Match line, returns false if line does not match
 */
func (this *Pattern) Match(line string) (Fields, bool) {

	m := this.re.FindStringSubmatch(line)
	if m == nil {
		return Fields{}, false
	}

	var f Fields
	if this.rx >= 0 {
		f.Rx = parseCounter(m[this.rx])
	}
	if this.tx >= 0 {
		f.Tx = parseCounter(m[this.tx])
	}

	return f, true
}

func (this *Pattern) String() string {
	return this.re.String()
}

func parseCounter(s string) *uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

/**
 * Compile list of patterns, defaults if exprs is empty
 */
func CompilePatterns(exprs []string) ([]*Pattern, error) {

	if len(exprs) == 0 {
		exprs = DEFAULT_STATBLOCK_PATTERNS
	}

	patterns := make([]*Pattern, 0, len(exprs))
	for _, expr := range exprs {
		p, err := CompilePattern(expr)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return patterns, nil
}

/**
 * Accumulates rx/tx from lines of one stats block.
 * Not safe for concurrent use.
 */
type StatBlockParser struct {
	patterns []*Pattern

	rx *uint64
	tx *uint64
}

/**
 * Create parser with given patterns, in priority order
 */
func NewStatBlockParser(patterns []*Pattern) *StatBlockParser {
	return &StatBlockParser{patterns: patterns}
}

/**
 * Create parser with default ifconfig patterns
 */
func NewDefaultStatBlockParser() *StatBlockParser {
	patterns, err := CompilePatterns(nil)
	if err != nil {
		panic(err)
	}
	return NewStatBlockParser(patterns)
}

/**
 * Push next line. First matching pattern wins,
 * already set fields are never overwritten.
 */
func (this *StatBlockParser) Push(line string) {

	for _, p := range this.patterns {
		f, ok := p.Match(line)
		if !ok {
			continue
		}

		if this.rx == nil {
			this.rx = f.Rx
		}
		if this.tx == nil {
			this.tx = f.Tx
		}
		return
	}
}

/**
 * TryTake returns counters once both fields are known
 * and clears pending state
 */
func (this *StatBlockParser) TryTake() (counters.ByteCounters, bool) {

	if this.rx == nil || this.tx == nil {
		return counters.ByteCounters{}, false
	}

	c := counters.ByteCounters{Rx: *this.rx, Tx: *this.tx}
	this.Reset()

	return c, true
}

/**
 * Pending reports whether any field of an incomplete block is set
 */
func (this *StatBlockParser) Pending() bool {
	return this.rx != nil || this.tx != nil
}

/**
 * Reset drops partially parsed block
 */
func (this *StatBlockParser) Reset() {
	this.rx = nil
	this.tx = nil
}
