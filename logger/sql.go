package logger

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
	"unicode"
)

func isPrintable(s []byte) bool {
	for _, r := range s {
		if !unicode.IsPrint(rune(r)) {
			return false
		}
	}
	return true
}

// ExplainSQL renders vars into the ? placeholders of sql for log output, never for execution
func ExplainSQL(sql string, escaper string, vars ...interface{}) string {
	rendered := make([]string, len(vars))
	for idx, v := range vars {
		if valuer, ok := v.(driver.Valuer); ok {
			v, _ = valuer.Value()
		}

		switch v := v.(type) {
		case bool:
			rendered[idx] = fmt.Sprint(v)
		case time.Time:
			rendered[idx] = escaper + v.Format("2006-01-02 15:04:05") + escaper
		case *time.Time:
			if v == nil {
				rendered[idx] = "NULL"
			} else {
				rendered[idx] = escaper + v.Format("2006-01-02 15:04:05") + escaper
			}
		case []byte:
			if isPrintable(v) {
				rendered[idx] = escaper + strings.ReplaceAll(string(v), escaper, "\\"+escaper) + escaper
			} else {
				rendered[idx] = escaper + "<binary>" + escaper
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			rendered[idx] = fmt.Sprintf("%d", v)
		case float64, float32:
			rendered[idx] = fmt.Sprintf("%.6f", v)
		case string:
			rendered[idx] = escaper + strings.ReplaceAll(v, escaper, "\\"+escaper) + escaper
		default:
			if v == nil {
				rendered[idx] = "NULL"
			} else {
				rendered[idx] = escaper + strings.ReplaceAll(fmt.Sprint(v), escaper, "\\"+escaper) + escaper
			}
		}
	}

	var (
		buf     strings.Builder
		varIdx  int
		inQuote bool
	)
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			buf.WriteByte(c)
		case c == '?' && !inQuote && varIdx < len(rendered):
			buf.WriteString(rendered[varIdx])
			varIdx++
		default:
			buf.WriteByte(c)
		}
	}

	return buf.String()
}
