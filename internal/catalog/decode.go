package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrMalformedBody is returned when the response is not a JSON array.
var ErrMalformedBody = errors.New("catalog response is not a JSON array")

// Decode parses an API response body into a collection. The body must be a
// JSON array; elements that are not objects are skipped and logged at debug
// level so one bad row cannot empty the table.
func Decode(body []byte, logger zerolog.Logger) (Collection, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if elements == nil {
		return nil, fmt.Errorf("%w: got null", ErrMalformedBody)
	}

	products := make(Collection, 0, len(elements))
	for i, element := range elements {
		var p Product
		if err := json.Unmarshal(element, &p); err != nil {
			logger.Debug().
				Str("operation", "decode").
				Int("index", i).
				Err(err).
				Msg("skipping undecodable product")
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
