package validatorx

import (
	"fmt"
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/muhammadheryan/property-listing/constant"
)

var (
	v    *gpvalidator.Validate
	once sync.Once
)

var customTags = map[string]gpvalidator.Func{
	"listing_status": validateListingStatus,
}

// Init builds the validator singleton and registers the domain tags. A tag that
// cannot be registered is a programming error and panics.
func Init() {
	once.Do(func() {
		v = gpvalidator.New()
		if err := registerTags(v, customTags); err != nil {
			panic(err)
		}
	})
}

func registerTags(val *gpvalidator.Validate, tags map[string]gpvalidator.Func) error {
	for tag, fn := range tags {
		if err := val.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return nil
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	Init()
	return v.Struct(s)
}

// FailedFields returns the struct field names that failed validation, empty if err
// is not a validation error.
func FailedFields(err error) []string {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fields
}

// HasTagFailure reports whether any field failed on the given tag.
func HasTagFailure(err error, tag string) bool {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

func validateListingStatus(fl gpvalidator.FieldLevel) bool {
	if fl.Field().String() == "" {
		return true
	}
	return constant.ListingStatus(fl.Field().String()).Valid()
}
