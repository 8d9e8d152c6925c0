package validators

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Validator bundles the struct validator used by the request middleware with
// the sanitation policy applied to incoming string fields.
type Validator struct {
	Validate *validator.Validate
	policy   *bluemonday.Policy
}

var (
	instance *Validator
	once     sync.Once
)

func GetValidator() *Validator {
	once.Do(func() {
		instance = &Validator{
			Validate: validator.New(validator.WithRequiredStructEnabled()),
			policy:   bluemonday.StrictPolicy(),
		}
	})

	return instance
}

// SanitizeData strips markup from every settable string field of the given
// struct pointer, including string slices.
func (v *Validator) SanitizeData(obj interface{}) error {
	val := reflect.ValueOf(obj)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return nil
	}

	elem := val.Elem()
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(v.policy.Sanitize(field.String()))
		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < field.Len(); j++ {
				field.Index(j).SetString(v.policy.Sanitize(field.Index(j).String()))
			}
		}
	}

	return nil
}
