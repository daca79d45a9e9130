package util

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"

	"github.com/tonedrill/backend/internal/constant"
	"github.com/tonedrill/backend/internal/music"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("naturalkey", naturalKey)
	validate.RegisterValidation("intervalform", intervalForm)
	validate.RegisterValidation("intervallabel", intervalLabel)
	validate.RegisterValidation("direction", direction)
	validate.RegisterValidation("statsrange", statsRange)
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})

	return validate
}

func naturalKey(fl validator.FieldLevel) bool {
	return music.ValidKey(fl.Field().String())
}

func intervalForm(fl validator.FieldLevel) bool {
	_, err := music.ParseInterval(fl.Field().String())
	return err == nil
}

func intervalLabel(fl validator.FieldLevel) bool {
	return music.Label(fl.Field().String()).Valid()
}

func direction(fl validator.FieldLevel) bool {
	return music.Direction(fl.Field().String()).Valid()
}

func statsRange(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == constant.StatsRangeAll {
		return true
	}
	_, ok := constant.StatsRangeDays[val]
	return ok
}

func nullStringValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.String); ok {
		return valuer.String
	}

	return nil
}
