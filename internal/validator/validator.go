// Package validator checks struct fields against `validate` tags.
//
// Rules are separated by "|": len:N and maxlen:N count runes of strings,
// regexp:RE must match the whole string, in:a,b,c lists allowed strings,
// min:N and max:N bound integers.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	tagNameValidate = "validate"
	tagValueIn      = "in"
	tagValueMax     = "max"
	tagValueMin     = "min"
	tagValueLen     = "len"
	tagValueMaxLen  = "maxlen"
	tagValueRegexp  = "regexp"
)

var (
	ErrIncorrectTagValue        = errors.New("incorrect tag value for validating with field value")
	ErrValidateIncorrectLen     = errors.New("value has incorrect length")
	ErrValidateTooLong          = errors.New("value is too long")
	ErrValidateNotMatchRegexp   = errors.New("does not match regexp")
	ErrValidateNotFoundInList   = errors.New("does not found in list")
	ErrValidateIncorrectNumeric = errors.New("incorrect numeric value")
	ErrIncorrectTag             = errors.New("incorrect tag")
	ErrIncorrectStruct          = errors.New("incorrect struct")
)

type ValidationError struct {
	Field string
	Err   error
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	sort.Slice(v, func(i, j int) bool {
		if v[i].Field == v[j].Field {
			return v[i].Err.Error() < v[j].Err.Error()
		}
		return v[i].Field < v[j].Field
	})
	b := strings.Builder{}
	for _, validationError := range v {
		b.WriteString(fmt.Sprintf("{name: %s, error: %s}", validationError.Field, validationError.Err.Error()))
	}
	return b.String()
}

type rule struct {
	name  string
	value string
}

// Validate returns ValidationErrors when field values break their rules and
// a plain error when the tags themselves are malformed.
func Validate(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ErrIncorrectStruct
	}
	t := rv.Type()

	var validationErrors ValidationErrors
	for i := 0; i < rv.NumField(); i++ {
		rules, err := parseValidateTag(t.Field(i).Tag)
		if err != nil {
			return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
		}
		for _, r := range rules {
			fieldErr, err := validateValue(rv.Field(i), r)
			if err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
			if fieldErr != nil {
				validationErrors = append(validationErrors, ValidationError{Field: t.Field(i).Name, Err: fieldErr})
			}
		}
	}

	if len(validationErrors) == 0 {
		return nil
	}
	return validationErrors
}

func parseValidateTag(tag reflect.StructTag) ([]rule, error) {
	val := tag.Get(tagNameValidate)
	if val == "" {
		return nil, nil
	}
	parts := strings.Split(val, "|")
	rules := make([]rule, 0, len(parts))
	for _, part := range parts {
		nameValue := strings.SplitN(part, ":", 2)
		if len(nameValue) != 2 {
			return nil, ErrIncorrectTag
		}
		rules = append(rules, rule{name: nameValue[0], value: nameValue[1]})
	}
	return rules, nil
}

func validateValue(field reflect.Value, r rule) (error, error) { //nolint:revive,stylecheck
	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		return validateString(field.String(), r)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return validateInt(field.Int(), r)
	default:
		return nil, ErrIncorrectTag
	}
}

func validateString(val string, r rule) (error, error) { //nolint:revive,stylecheck
	switch r.name {
	case tagValueLen, tagValueMaxLen:
		check, err := strconv.Atoi(r.value)
		if err != nil {
			return nil, ErrIncorrectTagValue
		}
		n := utf8.RuneCountInString(val)
		if r.name == tagValueLen && n != check {
			return ErrValidateIncorrectLen, nil
		}
		if r.name == tagValueMaxLen && n > check {
			return ErrValidateTooLong, nil
		}
		return nil, nil
	case tagValueRegexp:
		re, err := regexp.Compile(r.value)
		if err != nil {
			return nil, ErrIncorrectTagValue
		}
		if match := re.FindString(val); len(match) != len(val) {
			return ErrValidateNotMatchRegexp, nil
		}
		return nil, nil
	case tagValueIn:
		for _, allowed := range strings.Split(r.value, ",") {
			if val == allowed {
				return nil, nil
			}
		}
		return ErrValidateNotFoundInList, nil
	default:
		return nil, ErrIncorrectTag
	}
}

func validateInt(val int64, r rule) (error, error) { //nolint:revive,stylecheck
	if r.name != tagValueMin && r.name != tagValueMax {
		return nil, ErrIncorrectTag
	}
	check, err := strconv.ParseInt(r.value, 0, 64)
	if err != nil {
		return nil, ErrIncorrectTagValue
	}
	if (r.name == tagValueMin && val < check) || (r.name == tagValueMax && val > check) {
		return ErrValidateIncorrectNumeric, nil
	}
	return nil, nil
}
