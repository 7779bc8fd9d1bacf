// Package httpdemo exposes the table-building core over HTTP, grounded on
// the teacher's server/endpoints.go EndpointFunc/EndpointResult pattern:
// handlers return a result value describing the response instead of
// writing directly to the ResponseWriter, and a single wrapper applies
// logging and error-status handling uniformly.
//
// Each request builds its own grammar, table and parse.Driver (or its own
// art.Tree) from scratch; the router holds no shared parse state, so
// concurrent requests never contend on anything but Go's own scheduler -
// this is the concrete demonstration of spec.md §5's concurrency
// guarantee.
package httpdemo

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tablewright/tablewright/art"
	"github.com/tablewright/tablewright/internal/demogrammar"
	"github.com/tablewright/tablewright/lrerr"
)

// ParseRequest selects which of the fixture grammars to run input through.
type ParseRequest struct {
	Grammar string `json:"grammar"`
	Input   string `json:"input"`
}

// ParseResponse carries the accepted value. Result holds whatever the
// grammar's root constructor produced: an int for the arithmetic
// grammars, or a JSON-shaped any (map/slice/string/float64/bool/nil) for
// the JSON subset.
type ParseResponse struct {
	Result any `json:"result"`
}

// ArtFindRequest builds an ephemeral tree from Keywords and looks up Key
// against it, exercising art.Build/Tree.Find without needing a
// pre-built tree on the server.
type ArtFindRequest struct {
	Keywords []string `json:"keywords"`
	Key      string   `json:"key"`
}

// ArtFindResponse reports whether Key was one of the keywords the tree
// was built from, and if so, the leaf id art.Build assigned it (its
// index in Keywords).
type ArtFindResponse struct {
	Found bool `json:"found"`
	Leaf  int  `json:"leaf,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the chi router. It takes no shared state: every
// request constructs its own grammar/table/driver or tree from scratch,
// since the demo grammars are cheap to build and the point being
// demonstrated is per-request isolation, not a warm cache (internal/tablestore
// is the component that demonstrates the cache).
func NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Post("/v1/parse", Endpoint(epParse))
	r.Post("/v1/art/find", Endpoint(epArtFind))
	return r
}

// EndpointFunc is a handler that reports its own result instead of
// writing to the ResponseWriter directly.
type EndpointFunc func(req *http.Request) EndpointResult

// Endpoint adapts an EndpointFunc to http.HandlerFunc, applying uniform
// logging of the outcome.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		result := ep(req)
		result.writeResponse(w, req)
	}
}

// EndpointResult is the outcome of one handler invocation: an HTTP status
// plus the JSON body to encode for it.
type EndpointResult struct {
	status      int
	body        any
	internalMsg string
	isErr       bool
}

func ok(body any, internalMsg string) EndpointResult {
	return EndpointResult{status: http.StatusOK, body: body, internalMsg: internalMsg}
}

func badRequest(internalMsg string) EndpointResult {
	return EndpointResult{
		status:      http.StatusBadRequest,
		body:        errorResponse{Error: internalMsg},
		internalMsg: internalMsg,
		isErr:       true,
	}
}

func internalServerError(internalMsg string) EndpointResult {
	return EndpointResult{
		status:      http.StatusInternalServerError,
		body:        errorResponse{Error: "an internal error occurred"},
		internalMsg: internalMsg,
		isErr:       true,
	}
}

func (r EndpointResult) writeResponse(w http.ResponseWriter, req *http.Request) {
	level := "INFO"
	if r.isErr {
		level = "ERROR"
	}
	log.Printf("%s %s %s: HTTP-%d %s", level, req.Method, req.URL.Path, r.status, r.internalMsg)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.status)
	json.NewEncoder(w).Encode(r.body)
}

func parseJSONBody(req *http.Request, v any) error {
	defer req.Body.Close()
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed JSON request body: %w", err)
	}
	return nil
}

func epParse(req *http.Request) EndpointResult {
	var body ParseRequest
	if err := parseJSONBody(req, &body); err != nil {
		return badRequest(err.Error())
	}

	var (
		result any
		err    error
	)
	switch body.Grammar {
	case "arithmetic":
		result, err = demogrammar.ParseArithmetic(body.Input)
	case "arithmetic-precedence":
		result, err = demogrammar.ParseArithmeticWithPrecedence(body.Input)
	case "json":
		result, err = demogrammar.ParseJSON(body.Input)
	default:
		return badRequest(fmt.Sprintf("grammar: unknown value %q (want one of arithmetic, arithmetic-precedence, json)", body.Grammar))
	}
	if err != nil {
		if isUserFacingParseError(err) {
			return badRequest(err.Error())
		}
		return internalServerError(err.Error())
	}

	return ok(ParseResponse{Result: result}, fmt.Sprintf("parsed %q with grammar %q", body.Input, body.Grammar))
}

// isUserFacingParseError reports whether err describes a malformed input
// document (worth a 400) rather than a construction-time defect in the
// fixture grammar itself (worth a 500).
func isUserFacingParseError(err error) bool {
	var unexpected *lrerr.UnexpectedToken
	var unknown *lrerr.UnknownLexeme
	return errors.As(err, &unexpected) || errors.As(err, &unknown)
}

func epArtFind(req *http.Request) EndpointResult {
	var body ArtFindRequest
	if err := parseJSONBody(req, &body); err != nil {
		return badRequest(err.Error())
	}
	if len(body.Keywords) == 0 {
		return badRequest("keywords: must not be empty")
	}

	keys := make([]art.Key, len(body.Keywords))
	for i, kw := range body.Keywords {
		keys[i] = art.Key{Bytes: []byte(kw), Leaf: art.LeafID(i)}
	}
	tree, err := art.Build(keys)
	if err != nil {
		var dup *lrerr.DuplicateKey
		if errors.As(err, &dup) {
			return badRequest(err.Error())
		}
		return internalServerError(err.Error())
	}

	leaf, found := tree.Find([]byte(body.Key))
	resp := ArtFindResponse{Found: found}
	if found {
		resp.Leaf = int(leaf)
	}

	msg := fmt.Sprintf("looked up %q against %d keywords", body.Key, len(body.Keywords))
	if !found {
		msg = strings.TrimSuffix(msg, "") + " (no match)"
	}
	return ok(resp, msg)
}
