// Package validate coerces raw recruiting-API payloads into the internal
// schema, rejecting any envelope with a structurally invalid record.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/recruitu/lateral/internal/domain"
	"github.com/recruitu/lateral/internal/domain/profile"
	"github.com/recruitu/lateral/internal/domain/search/result"
)

var (
	searchSchema  = mustSchema(searchEnvelopeSchema)
	profileSchema = mustSchema(profileEnvelopeSchema)
)

func mustSchema(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("validate: bad embedded schema: %v", err))
	}
	return s
}

// SearchEnvelope validates and decodes one page of search results.
// Failure is a domain.PayloadError carrying the first violation; there is
// no per-record skip-and-continue.
func SearchEnvelope(raw []byte) (result.Envelope, error) {
	if err := check(searchSchema, raw); err != nil {
		return result.Envelope{}, err
	}

	var env result.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return result.Envelope{}, domain.NewPayloadError("decode search envelope: " + err.Error())
	}

	if env.NumItemsOnPage != len(env.Results) {
		return result.Envelope{}, domain.NewPayloadError(fmt.Sprintf(
			"num_items_on_page=%d does not match %d results", env.NumItemsOnPage, len(env.Results),
		))
	}
	if env.NumItems > 0 && (env.PageNum < 1 || env.PageNum > env.NumPages) {
		return result.Envelope{}, domain.NewPayloadError(fmt.Sprintf(
			"page_num=%d out of range [1, %d]", env.PageNum, env.NumPages,
		))
	}

	return env, nil
}

// ProfileEnvelope validates and decodes a profile-by-id response.
func ProfileEnvelope(raw []byte) (profile.Envelope, error) {
	if err := check(profileSchema, raw); err != nil {
		return profile.Envelope{}, err
	}

	var env profile.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return profile.Envelope{}, domain.NewPayloadError("decode profile envelope: " + err.Error())
	}
	return env, nil
}

func check(schema *gojsonschema.Schema, raw []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		// Loader error: body is not JSON at all.
		return domain.NewPayloadError(err.Error())
	}
	if !res.Valid() {
		return domain.NewPayloadError(res.Errors()[0].String())
	}
	return nil
}
