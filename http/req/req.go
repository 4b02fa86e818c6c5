package req

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/payload"
	"github.com/xy-planning-network/trellis/http/pipeline"
)

// A Parser decodes request payloads into structs and validates them.
// A Parser is safe for concurrent use.
type Parser struct {
	queryParamDecoder *schema.Decoder
	pathParamDecoder  *schema.Decoder
	validator
}

// NewParser constructs a *Parser.
func NewParser() *Parser {
	return &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		pathParamDecoder:  newPathParamDecoder(),
		validator:         newValidator(),
	}
}

// ParseBody decodes a parsed request body into a pointer to a struct.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// JSON bodies match fields by their "json" tags;
// form bodies match fields by their "schema" tags, like query parameters.
// An absent, text or binary body is an ErrMalformedBody.
func (p *Parser) ParseBody(b payload.Body, structPtr any) error {
	if err := checkPtr(structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: ParseBody called with non-pointer: %w", err)
	}

	val, ok := b.Any()
	if !ok {
		return fmt.Errorf("trellis/http/req: %w: expected a structured body, got %s", trellis.ErrMalformedBody, b.Kind())
	}

	if err := p.decodeBody(val, structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: failed decoding request body: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseQueryParams decodes into a pointer to a struct the query param data in params.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := checkPtr(structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: ParseQueryParams called with non-pointer: %w", err)
	}

	if err := p.queryParamDecoder.Decode(structPtr, params); err != nil {
		return fmt.Errorf("trellis/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParsePathParams decodes into a pointer to a struct the parameters a route captured,
// matching fields by their "path" tags.
// Parameters arrive percent-encoded and are unescaped before decoding.
// If successful, ParsePathParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParsePathParams(params map[string]string, structPtr any) error {
	if err := checkPtr(structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: ParsePathParams called with non-pointer: %w", err)
	}

	vals := make(url.Values, len(params))
	for k, v := range params {
		uv, err := url.PathUnescape(v)
		if err != nil {
			return fmt.Errorf("trellis/http/req: failed decoding path param %q: %w: %s", k, trellis.ErrNotValid, err)
		}
		vals.Set(k, uv)
	}

	if err := p.pathParamDecoder.Decode(structPtr, vals); err != nil {
		return fmt.Errorf("trellis/http/req: failed decoding path params: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseContext fills structPtr from everything c holds:
// path parameters, then query parameters, then the body when there is one.
// Validation runs once, after all three.
func (p *Parser) ParseContext(c *pipeline.Context, structPtr any) error {
	if err := checkPtr(structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: ParseContext called with non-pointer: %w", err)
	}

	vals := make(url.Values, len(c.Params))
	for k, v := range c.Params {
		vals.Set(k, v)
	}

	if err := p.pathParamDecoder.Decode(structPtr, vals); err != nil {
		return fmt.Errorf("trellis/http/req: failed decoding path params: %w", translateDecoderError(err))
	}

	if err := p.queryParamDecoder.Decode(structPtr, c.Query); err != nil {
		return fmt.Errorf("trellis/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	if val, ok := c.Body.Any(); ok {
		if err := p.decodeBody(val, structPtr); err != nil {
			return fmt.Errorf("trellis/http/req: failed decoding request body: %w", err)
		}
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("trellis/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// decodeBody decodes form bodies like query parameters and anything else by "json" tags.
func (p *Parser) decodeBody(val any, structPtr any) error {
	if form, ok := val.(url.Values); ok {
		if err := p.queryParamDecoder.Decode(structPtr, form); err != nil {
			return translateDecoderError(err)
		}

		return nil
	}

	return decodeValue(val, structPtr)
}
