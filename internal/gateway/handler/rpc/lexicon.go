package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	gatewaylexicon "sarf/internal/gateway/service/lexicon"
	"sarf/internal/lexicon"
	"sarf/internal/morph"
	"sarf/internal/scheme"
)

type LexiconHandler struct {
	svc *gatewaylexicon.Service
}

func NewLexiconHandler(svc *gatewaylexicon.Service) *LexiconHandler {
	return &LexiconHandler{svc: svc}
}

// NewLexiconServiceHandler builds the connect handlers for h and returns the
// path prefix to mount them on.
func NewLexiconServiceHandler(h *LexiconHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(LexiconServiceListRootsProcedure, connect.NewUnaryHandler(LexiconServiceListRootsProcedure, h.ListRoots, opts...))
	mux.Handle(LexiconServiceAddRootProcedure, connect.NewUnaryHandler(LexiconServiceAddRootProcedure, h.AddRoot, opts...))
	mux.Handle(LexiconServiceDeleteRootProcedure, connect.NewUnaryHandler(LexiconServiceDeleteRootProcedure, h.DeleteRoot, opts...))
	mux.Handle(LexiconServiceGenerateProcedure, connect.NewUnaryHandler(LexiconServiceGenerateProcedure, h.Generate, opts...))
	mux.Handle(LexiconServiceVerifyProcedure, connect.NewUnaryHandler(LexiconServiceVerifyProcedure, h.Verify, opts...))
	mux.Handle(LexiconServiceIdentifyProcedure, connect.NewUnaryHandler(LexiconServiceIdentifyProcedure, h.Identify, opts...))
	mux.Handle(LexiconServiceListSchemesProcedure, connect.NewUnaryHandler(LexiconServiceListSchemesProcedure, h.ListSchemes, opts...))
	mux.Handle(LexiconServiceAddSchemeProcedure, connect.NewUnaryHandler(LexiconServiceAddSchemeProcedure, h.AddScheme, opts...))
	mux.Handle(LexiconServiceRemoveSchemeProcedure, connect.NewUnaryHandler(LexiconServiceRemoveSchemeProcedure, h.RemoveScheme, opts...))
	return "/" + LexiconServiceName + "/", mux
}

func (h *LexiconHandler) ListRoots(_ context.Context, _ *connect.Request[ListRootsRequest]) (*connect.Response[ListRootsResponse], error) {
	return connect.NewResponse(&ListRootsResponse{Roots: h.svc.ListRoots()}), nil
}

func (h *LexiconHandler) AddRoot(ctx context.Context, req *connect.Request[RootRequest]) (*connect.Response[RootResponse], error) {
	root := strings.TrimSpace(req.Msg.Root)
	if root == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("root is required"))
	}
	if err := h.svc.AddRoot(ctx, root); err != nil {
		return nil, toLexiconError(err)
	}
	return connect.NewResponse(&RootResponse{Root: morph.Normalize(root)}), nil
}

func (h *LexiconHandler) DeleteRoot(ctx context.Context, req *connect.Request[RootRequest]) (*connect.Response[RootResponse], error) {
	root := strings.TrimSpace(req.Msg.Root)
	if root == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("root is required"))
	}
	if err := h.svc.DeleteRoot(ctx, root); err != nil {
		return nil, toLexiconError(err)
	}
	return connect.NewResponse(&RootResponse{Root: morph.Normalize(root)}), nil
}

func (h *LexiconHandler) Generate(ctx context.Context, req *connect.Request[RootRequest]) (*connect.Response[GenerateResponse], error) {
	root := strings.TrimSpace(req.Msg.Root)
	if root == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("root is required"))
	}
	out, err := h.svc.Generate(ctx, root)
	if err != nil {
		return nil, toLexiconError(err)
	}
	return connect.NewResponse(&GenerateResponse{Root: morph.Normalize(root), Derivations: out}), nil
}

func (h *LexiconHandler) Verify(ctx context.Context, req *connect.Request[VerifyRequest]) (*connect.Response[VerifyResponse], error) {
	word := strings.TrimSpace(req.Msg.Word)
	root := strings.TrimSpace(req.Msg.Root)
	if word == "" || root == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("word and root are required"))
	}
	ok, name := h.svc.Verify(ctx, word, root)
	return connect.NewResponse(&VerifyResponse{Valid: ok, Scheme: name}), nil
}

func (h *LexiconHandler) Identify(ctx context.Context, req *connect.Request[IdentifyRequest]) (*connect.Response[IdentifyResponse], error) {
	word := strings.TrimSpace(req.Msg.Word)
	if word == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("word is required"))
	}
	return connect.NewResponse(&IdentifyResponse{Matches: h.svc.Identify(ctx, word)}), nil
}

func (h *LexiconHandler) ListSchemes(_ context.Context, _ *connect.Request[ListSchemesRequest]) (*connect.Response[ListSchemesResponse], error) {
	return connect.NewResponse(&ListSchemesResponse{Schemes: h.svc.ListSchemes()}), nil
}

func (h *LexiconHandler) AddScheme(ctx context.Context, req *connect.Request[SchemeRequest]) (*connect.Response[SchemeResponse], error) {
	name := morph.Normalize(strings.TrimSpace(req.Msg.Name))
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name is required"))
	}
	category := scheme.DefaultCategory
	if req.Msg.Category != nil {
		category = strings.TrimSpace(*req.Msg.Category)
	}
	if err := h.svc.AddScheme(ctx, name, category); err != nil {
		return nil, toLexiconError(err)
	}
	return connect.NewResponse(&SchemeResponse{Scheme: scheme.Scheme{Name: name, Category: category}}), nil
}

func (h *LexiconHandler) RemoveScheme(ctx context.Context, req *connect.Request[SchemeRequest]) (*connect.Response[SchemeResponse], error) {
	name := morph.Normalize(strings.TrimSpace(req.Msg.Name))
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name is required"))
	}
	if err := h.svc.RemoveScheme(ctx, name); err != nil {
		return nil, toLexiconError(err)
	}
	return connect.NewResponse(&SchemeResponse{Scheme: scheme.Scheme{Name: name}}), nil
}

func toLexiconError(err error) error {
	switch {
	case errors.Is(err, lexicon.ErrInvalidToken), errors.Is(err, lexicon.ErrInvalidScheme):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, lexicon.ErrNotFound), errors.Is(err, lexicon.ErrUnknownScheme):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, lexicon.ErrAlreadyExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, fmt.Errorf("lexicon service failed: %w", err))
	}
}
