package actions

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Factory builds an action from the parameters declared in a record.
type Factory func(params map[string]any) (domain.Action, error)

// decodeParams decodes record parameters into out, accepting "5" for 5 and
// similar weak conversions.
func decodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid action parameters: %w", err)
	}
	return nil
}
