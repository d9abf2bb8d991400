package transforms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
)

// TransformDefinition overwrites fields of every value of Type whose Match fields all equal the given strings
type TransformDefinition struct {
	Type  string
	Match map[string]string
	Data  map[string]interface{}
}

func (t *TransformDefinition) Transform(inputValue reflect.Value) bool {
	if !inputValue.IsValid() || inputValue.Kind() != reflect.Struct {
		return false
	}

	if t.Type != "" && t.Type != inputValue.Type().String() {
		return false
	}

	for key, value := range t.Match {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || field.Kind() != reflect.String || value != field.String() {
			return false
		}
	}

	for key, value := range t.Data {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || !field.CanSet() {
			log.Warn().Str("type", t.Type).Str("field", key).Msg("Transform references unknown field")
			continue
		}

		if err := setField(field, value); err != nil {
			log.Warn().Err(err).Str("type", t.Type).Str("field", key).Msg("Transform value does not fit field")
		}
	}

	return true
}

func setField(field reflect.Value, value interface{}) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(fmt.Sprint(value))
		return nil
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			break
		}

		var items []string
		switch typed := value.(type) {
		case []interface{}:
			for _, item := range typed {
				items = append(items, fmt.Sprint(item))
			}
		case []string:
			items = append(items, typed...)
		case string:
			for _, item := range strings.Split(typed, "|") {
				items = append(items, strings.TrimSpace(item))
			}
		default:
			return fmt.Errorf("cannot use %T as a list", value)
		}

		field.Set(reflect.ValueOf(items))
		return nil
	}

	reflected := reflect.ValueOf(value)
	if reflected.IsValid() && reflected.Type().ConvertibleTo(field.Type()) {
		field.Set(reflected.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Transform applies every loaded definition to input, which must be a pointer to a struct or a slice of them
func Transform(input interface{}) int {
	inputValueOf := reflect.ValueOf(input)
	applied := 0

	switch inputValueOf.Kind() {
	case reflect.Slice:
		for i := 0; i < inputValueOf.Len(); i++ {
			applied += transformValue(inputValueOf.Index(i))
		}
	case reflect.Pointer:
		applied += transformValue(inputValueOf)
	}

	return applied
}

func transformValue(inputValueOf reflect.Value) int {
	var inputValue reflect.Value
	switch inputValueOf.Kind() {
	case reflect.Pointer:
		inputValue = inputValueOf.Elem()
	case reflect.Struct:
		// elements of a slice are addressable so can be updated in place
		inputValue = inputValueOf
	default:
		return 0
	}

	applied := 0
	for _, transformDef := range transforms {
		if transformDef.Transform(inputValue) {
			applied++
		}
	}

	return applied
}
