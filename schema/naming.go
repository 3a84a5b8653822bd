package schema

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Namer namer interface
type Namer interface {
	TableName(model string) string
	ClassName(association string) string
	CollectionClassName(association string) string
	ForeignKeyName(name string) string
}

// NamingStrategy tables, classes and keys naming strategy
type NamingStrategy struct {
	TablePrefix   string
	SingularTable bool
}

// TableName convert model name to table name, "Motorcycle" => "motorcycles"
func (ns NamingStrategy) TableName(model string) string {
	if ns.SingularTable {
		return ns.TablePrefix + Underscore(model)
	}
	return ns.TablePrefix + Tableize(model)
}

// ClassName convert a singular association name to a model name, "human" => "Human"
func (ns NamingStrategy) ClassName(association string) string {
	return Camelize(association)
}

// CollectionClassName convert a plural association name to a model name, "motorcycles" => "Motorcycle"
func (ns NamingStrategy) CollectionClassName(association string) string {
	return Camelize(Singularize(association))
}

// ForeignKeyName generate the default foreign key column for name, "Human" => "human_id"
func (ns NamingStrategy) ForeignKeyName(name string) string {
	return Underscore(name) + "_id"
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	titleCaser := cases.Title(language.Und)
	var commonInitialismsForReplacer []string
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, titleCaser.String(initialism))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

// Tableize lowercase, underscore and pluralize name, "HouseOwner" => "house_owners"
func Tableize(name string) string {
	return inflection.Plural(Underscore(name))
}

// Singularize singular form of word, "motorcycles" => "motorcycle"
func Singularize(word string) string {
	return inflection.Singular(word)
}

// Camelize upper camel case of an underscored word, "house_owner" => "HouseOwner"
func Camelize(word string) string {
	parts := strings.FieldsFunc(word, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })

	var buf strings.Builder
	for _, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		buf.WriteRune(unicode.ToUpper(r))
		buf.WriteString(part[size:])
	}
	return buf.String()
}

// Underscore snake case of a camel cased word, "HouseOwner" => "house_owner"
func Underscore(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return fmt.Sprint(v)
	}

	var (
		value                          = commonInitialismsReplacer.Replace(name)
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = value[0] <= 'Z' && value[0] >= 'A'
	)

	for i, v := range value[:len(value)-1] {
		nextCase = value[i+1] <= 'Z' && value[i+1] >= 'A'
		nextNumber = value[i+1] >= '0' && value[i+1] <= '9'

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(v + 32)
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(v + 32)
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[len(value)-1] + 32)
	} else {
		buf.WriteByte(value[len(value)-1])
	}

	result := buf.String()
	smap.Store(name, result)
	return result
}
