package cardigann

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// filterFunc transforms a scraped value. Filters are pure: same input and
// args always produce the same output.
type filterFunc func(value string, args []string) (string, error)

var filterRegistry = map[string]filterFunc{
	"replace":    filterReplace,
	"re_replace": filterReReplace,
	"split":      filterSplit,
	"trim":       filterTrim,
	"trimleft":   filterTrimLeft,
	"trimright":  filterTrimRight,
	"prepend":    filterPrepend,
	"append":     filterAppend,
	"tolower":    filterToLower,
	"toupper":    filterToUpper,
	"regexp":     filterRegexp,
	"urldecode":  filterURLDecode,
	"urlencode":  filterURLEncode,
	"htmldecode": filterHTMLDecode,
	"htmlencode": filterHTMLEncode,
	"size":       filterSize,
	"multiply":   filterMultiply,
	"divide":     filterDivide,
}

// ApplyFilters runs a filter chain over a value, in order. An unknown
// filter name or a filter failure aborts the chain.
func ApplyFilters(value string, filters []Filter) (string, error) {
	for _, f := range filters {
		fn, ok := filterRegistry[f.Name]
		if !ok {
			return "", fmt.Errorf("unknown filter %q", f.Name)
		}
		var err error
		value, err = fn(value, f.Args)
		if err != nil {
			return "", fmt.Errorf("filter %q: %w", f.Name, err)
		}
	}
	return value, nil
}

func filterReplace(value string, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("expected 2 args, got %d", len(args))
	}
	return strings.ReplaceAll(value, args[0], args[1]), nil
}

func filterReReplace(value string, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("expected 2 args, got %d", len(args))
	}
	re, err := regexp.Compile(args[0])
	if err != nil {
		return "", fmt.Errorf("bad pattern: %w", err)
	}
	return re.ReplaceAllString(value, args[1]), nil
}

// filterSplit splits on a separator and keeps one element. A negative
// index counts from the end.
func filterSplit(value string, args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("expected 2 args, got %d", len(args))
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return "", fmt.Errorf("bad index %q: %w", args[1], err)
	}
	parts := strings.Split(value, args[0])
	if idx < 0 {
		idx += len(parts)
	}
	if idx < 0 || idx >= len(parts) {
		return "", fmt.Errorf("index %s out of range for %d parts", args[1], len(parts))
	}
	return parts[idx], nil
}

func filterTrim(value string, args []string) (string, error) {
	if len(args) == 0 {
		return strings.TrimSpace(value), nil
	}
	return strings.Trim(value, args[0]), nil
}

func filterTrimLeft(value string, args []string) (string, error) {
	if len(args) == 0 {
		return strings.TrimLeft(value, " \t\n\r"), nil
	}
	return strings.TrimLeft(value, args[0]), nil
}

func filterTrimRight(value string, args []string) (string, error) {
	if len(args) == 0 {
		return strings.TrimRight(value, " \t\n\r"), nil
	}
	return strings.TrimRight(value, args[0]), nil
}

func filterPrepend(value string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected 1 arg, got %d", len(args))
	}
	return args[0] + value, nil
}

func filterAppend(value string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected 1 arg, got %d", len(args))
	}
	return value + args[0], nil
}

func filterToLower(value string, _ []string) (string, error) {
	return strings.ToLower(value), nil
}

func filterToUpper(value string, _ []string) (string, error) {
	return strings.ToUpper(value), nil
}

// filterRegexp extracts the first capture group, or the whole match when
// the pattern has no groups.
func filterRegexp(value string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected 1 arg, got %d", len(args))
	}
	re, err := regexp.Compile(args[0])
	if err != nil {
		return "", fmt.Errorf("bad pattern: %w", err)
	}
	m := re.FindStringSubmatch(value)
	if m == nil {
		return "", fmt.Errorf("pattern %q did not match %q", args[0], value)
	}
	if len(m) > 1 {
		return m[1], nil
	}
	return m[0], nil
}

func filterURLDecode(value string, _ []string) (string, error) {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return "", err
	}
	return decoded, nil
}

func filterURLEncode(value string, _ []string) (string, error) {
	return url.QueryEscape(value), nil
}

func filterHTMLDecode(value string, _ []string) (string, error) {
	return html.UnescapeString(value), nil
}

func filterHTMLEncode(value string, _ []string) (string, error) {
	return html.EscapeString(value), nil
}

var sizeRe = regexp.MustCompile(`(?i)([\d.,]+)\s*([KMGT]i?B|B)`)

var sizeMultipliers = map[string]float64{
	"B":   1,
	"KB":  1000,
	"KIB": 1024,
	"MB":  1000 * 1000,
	"MIB": 1024 * 1024,
	"GB":  1000 * 1000 * 1000,
	"GIB": 1024 * 1024 * 1024,
	"TB":  1000 * 1000 * 1000 * 1000,
	"TIB": 1024 * 1024 * 1024 * 1024,
}

// filterSize converts a human-readable size ("1.4 GB") to a byte count.
func filterSize(value string, _ []string) (string, error) {
	m := sizeRe.FindStringSubmatch(value)
	if m == nil {
		return "", fmt.Errorf("no size found in %q", value)
	}
	num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return "", fmt.Errorf("bad number %q: %w", m[1], err)
	}
	mult, ok := sizeMultipliers[strings.ToUpper(m[2])]
	if !ok {
		return "", fmt.Errorf("unknown unit %q", m[2])
	}
	return strconv.FormatInt(int64(num*mult), 10), nil
}

func filterMultiply(value string, args []string) (string, error) {
	return filterArith(value, args, func(v, f float64) float64 { return v * f })
}

func filterDivide(value string, args []string) (string, error) {
	if len(args) == 1 {
		if f, err := strconv.ParseFloat(args[0], 64); err == nil && f == 0 {
			return "", fmt.Errorf("division by zero")
		}
	}
	return filterArith(value, args, func(v, f float64) float64 { return v / f })
}

func filterArith(value string, args []string, op func(v, f float64) float64) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected 1 arg, got %d", len(args))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", fmt.Errorf("bad value %q: %w", value, err)
	}
	f, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", fmt.Errorf("bad factor %q: %w", args[0], err)
	}
	return strconv.FormatFloat(op(v, f), 'f', -1, 64), nil
}
