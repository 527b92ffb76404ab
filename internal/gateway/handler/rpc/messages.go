package rpc

import (
	"encoding/json"

	"sarf/internal/lexicon"
	"sarf/internal/scheme"
)

// LexiconServiceName is the fully-qualified name of the lexicon service.
const LexiconServiceName = "sarf.v1.LexiconService"

// Procedure paths served under LexiconServiceName.
const (
	LexiconServiceListRootsProcedure    = "/" + LexiconServiceName + "/ListRoots"
	LexiconServiceAddRootProcedure      = "/" + LexiconServiceName + "/AddRoot"
	LexiconServiceDeleteRootProcedure   = "/" + LexiconServiceName + "/DeleteRoot"
	LexiconServiceGenerateProcedure     = "/" + LexiconServiceName + "/Generate"
	LexiconServiceVerifyProcedure       = "/" + LexiconServiceName + "/Verify"
	LexiconServiceIdentifyProcedure     = "/" + LexiconServiceName + "/Identify"
	LexiconServiceListSchemesProcedure  = "/" + LexiconServiceName + "/ListSchemes"
	LexiconServiceAddSchemeProcedure    = "/" + LexiconServiceName + "/AddScheme"
	LexiconServiceRemoveSchemeProcedure = "/" + LexiconServiceName + "/RemoveScheme"
)

type ListRootsRequest struct{}

type ListRootsResponse struct {
	Roots []lexicon.RootView `json:"roots"`
}

type RootRequest struct {
	Root string `json:"root"`
}

type RootResponse struct {
	Root string `json:"root"`
}

type GenerateResponse struct {
	Root        string               `json:"root"`
	Derivations []lexicon.Derivation `json:"derivations"`
}

type VerifyRequest struct {
	Word string `json:"word"`
	Root string `json:"root"`
}

type VerifyResponse struct {
	Valid  bool   `json:"valid"`
	Scheme string `json:"scheme,omitempty"`
}

type IdentifyRequest struct {
	Word string `json:"word"`
}

type IdentifyResponse struct {
	Matches []lexicon.Match `json:"matches"`
}

type ListSchemesRequest struct{}

type ListSchemesResponse struct {
	Schemes []scheme.Scheme `json:"schemes"`
}

// SchemeRequest names a scheme. A nil Category means the default one.
type SchemeRequest struct {
	Name     string  `json:"name"`
	Category *string `json:"category,omitempty"`
}

type SchemeResponse struct {
	Scheme scheme.Scheme `json:"scheme"`
}

// jsonCodec lets connect carry the plain Go messages above as JSON.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
