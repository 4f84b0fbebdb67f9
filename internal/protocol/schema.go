package protocol

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/client.schema.json
var clientSchemaJSON string

var (
	clientSchemaOnce sync.Once
	clientSchema     *jsonschema.Schema
	clientSchemaErr  error
)

func compiledClientSchema() (*jsonschema.Schema, error) {
	clientSchemaOnce.Do(func() {
		clientSchema, clientSchemaErr = jsonschema.CompileString("client.schema.json", clientSchemaJSON)
	})
	return clientSchema, clientSchemaErr
}

// ClientMessage is a validated client message. Exactly one field is set.
type ClientMessage struct {
	Hello *HelloMsg
	Input *InputMsg
}

// DecodeClient parses and validates a client frame against the embedded
// schema. Failures are returned as *Error.
func DecodeClient(b []byte) (ClientMessage, error) {
	schema, err := compiledClientSchema()
	if err != nil {
		return ClientMessage{}, &Error{Code: ErrInternal, Err: err}
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return ClientMessage{}, &Error{Code: ErrBadRequest, Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return ClientMessage{}, &Error{Code: ErrBadRequest, Err: err}
	}

	base, err := DecodeBase(b)
	if err != nil {
		return ClientMessage{}, &Error{Code: ErrBadRequest, Err: err}
	}

	switch base.Type {
	case TypeHello:
		var hello HelloMsg
		if err := json.Unmarshal(b, &hello); err != nil {
			return ClientMessage{}, &Error{Code: ErrBadRequest, Err: err}
		}
		if hello.ProtocolVersion != Version {
			return ClientMessage{}, &Error{
				Code: ErrVersion,
				Err:  fmt.Errorf("unsupported protocol_version %q, want %q", hello.ProtocolVersion, Version),
			}
		}
		return ClientMessage{Hello: &hello}, nil

	case TypeInput:
		var in InputMsg
		if err := json.Unmarshal(b, &in); err != nil {
			return ClientMessage{}, &Error{Code: ErrBadRequest, Err: err}
		}
		return ClientMessage{Input: &in}, nil
	}

	// The schema only admits the types above
	return ClientMessage{}, &Error{Code: ErrBadRequest, Err: errors.New("unknown message type")}
}
