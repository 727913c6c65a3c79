package config

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/metalagman/boardfill/internal/board"
)

var colorType = reflect.TypeOf(board.ColorNone)

// DecodeHook converts duration strings and label color names while decoding
// settings into Config.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		StringToColorHookFunc(),
	)
}

// StringToColorHookFunc decodes color names into board.Color, rejecting names
// Trello does not accept.
func StringToColorHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != colorType || f.Kind() != reflect.String {
			return data, nil
		}
		name, _ := data.(string)
		c, ok := board.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("unknown label color %q", name)
		}
		return c, nil
	}
}
