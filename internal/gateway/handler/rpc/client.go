package rpc

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// LexiconClient calls a remote LexiconService.
type LexiconClient struct {
	listRoots    *connect.Client[ListRootsRequest, ListRootsResponse]
	addRoot      *connect.Client[RootRequest, RootResponse]
	deleteRoot   *connect.Client[RootRequest, RootResponse]
	generate     *connect.Client[RootRequest, GenerateResponse]
	verify       *connect.Client[VerifyRequest, VerifyResponse]
	identify     *connect.Client[IdentifyRequest, IdentifyResponse]
	listSchemes  *connect.Client[ListSchemesRequest, ListSchemesResponse]
	addScheme    *connect.Client[SchemeRequest, SchemeResponse]
	removeScheme *connect.Client[SchemeRequest, SchemeResponse]
}

func NewLexiconClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LexiconClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &LexiconClient{
		listRoots:    connect.NewClient[ListRootsRequest, ListRootsResponse](httpClient, baseURL+LexiconServiceListRootsProcedure, opts...),
		addRoot:      connect.NewClient[RootRequest, RootResponse](httpClient, baseURL+LexiconServiceAddRootProcedure, opts...),
		deleteRoot:   connect.NewClient[RootRequest, RootResponse](httpClient, baseURL+LexiconServiceDeleteRootProcedure, opts...),
		generate:     connect.NewClient[RootRequest, GenerateResponse](httpClient, baseURL+LexiconServiceGenerateProcedure, opts...),
		verify:       connect.NewClient[VerifyRequest, VerifyResponse](httpClient, baseURL+LexiconServiceVerifyProcedure, opts...),
		identify:     connect.NewClient[IdentifyRequest, IdentifyResponse](httpClient, baseURL+LexiconServiceIdentifyProcedure, opts...),
		listSchemes:  connect.NewClient[ListSchemesRequest, ListSchemesResponse](httpClient, baseURL+LexiconServiceListSchemesProcedure, opts...),
		addScheme:    connect.NewClient[SchemeRequest, SchemeResponse](httpClient, baseURL+LexiconServiceAddSchemeProcedure, opts...),
		removeScheme: connect.NewClient[SchemeRequest, SchemeResponse](httpClient, baseURL+LexiconServiceRemoveSchemeProcedure, opts...),
	}
}

func (c *LexiconClient) ListRoots(ctx context.Context, req *connect.Request[ListRootsRequest]) (*connect.Response[ListRootsResponse], error) {
	return c.listRoots.CallUnary(ctx, req)
}

func (c *LexiconClient) AddRoot(ctx context.Context, req *connect.Request[RootRequest]) (*connect.Response[RootResponse], error) {
	return c.addRoot.CallUnary(ctx, req)
}

func (c *LexiconClient) DeleteRoot(ctx context.Context, req *connect.Request[RootRequest]) (*connect.Response[RootResponse], error) {
	return c.deleteRoot.CallUnary(ctx, req)
}

func (c *LexiconClient) Generate(ctx context.Context, req *connect.Request[RootRequest]) (*connect.Response[GenerateResponse], error) {
	return c.generate.CallUnary(ctx, req)
}

func (c *LexiconClient) Verify(ctx context.Context, req *connect.Request[VerifyRequest]) (*connect.Response[VerifyResponse], error) {
	return c.verify.CallUnary(ctx, req)
}

func (c *LexiconClient) Identify(ctx context.Context, req *connect.Request[IdentifyRequest]) (*connect.Response[IdentifyResponse], error) {
	return c.identify.CallUnary(ctx, req)
}

func (c *LexiconClient) ListSchemes(ctx context.Context, req *connect.Request[ListSchemesRequest]) (*connect.Response[ListSchemesResponse], error) {
	return c.listSchemes.CallUnary(ctx, req)
}

func (c *LexiconClient) AddScheme(ctx context.Context, req *connect.Request[SchemeRequest]) (*connect.Response[SchemeResponse], error) {
	return c.addScheme.CallUnary(ctx, req)
}

func (c *LexiconClient) RemoveScheme(ctx context.Context, req *connect.Request[SchemeRequest]) (*connect.Response[SchemeResponse], error) {
	return c.removeScheme.CallUnary(ctx, req)
}
