package rpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lexiconrepo "sarf/internal/gateway/repository/lexicon"
	gatewaylexicon "sarf/internal/gateway/service/lexicon"
	"sarf/internal/lexicon"
	"sarf/internal/scheme"
)

func newTestClient(t *testing.T) *LexiconClient {
	t.Helper()
	repo := lexiconrepo.NewMemoryStore(lexicon.Snapshot{
		Roots:   []string{"كتب"},
		Schemes: []scheme.Scheme{{Name: "فاعل", Category: "اسم فاعل"}, {Name: "مفعول", Category: "اسم مفعول"}},
	})
	svc, err := gatewaylexicon.New(repo, gatewaylexicon.Options{})
	require.NoError(t, err)
	_, err = svc.Load(context.Background())
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle(NewLexiconServiceHandler(NewLexiconHandler(svc)))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewLexiconClient(srv.Client(), srv.URL)
}

func codeOf(err error) connect.Code {
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return cerr.Code()
	}
	return connect.CodeUnknown
}

func TestLexiconServiceRoots(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	added, err := client.AddRoot(ctx, connect.NewRequest(&RootRequest{Root: " دَرَسَ "}))
	require.NoError(t, err)
	assert.Equal(t, "درس", added.Msg.Root)

	_, err = client.AddRoot(ctx, connect.NewRequest(&RootRequest{Root: "درس"}))
	assert.Equal(t, connect.CodeAlreadyExists, codeOf(err))
	_, err = client.AddRoot(ctx, connect.NewRequest(&RootRequest{Root: "abc"}))
	assert.Equal(t, connect.CodeInvalidArgument, codeOf(err))
	_, err = client.AddRoot(ctx, connect.NewRequest(&RootRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, codeOf(err))

	list, err := client.ListRoots(ctx, connect.NewRequest(&ListRootsRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Roots, 2)
	assert.Equal(t, "درس", list.Msg.Roots[0].Root)

	_, err = client.DeleteRoot(ctx, connect.NewRequest(&RootRequest{Root: "علم"}))
	assert.Equal(t, connect.CodeNotFound, codeOf(err))
	_, err = client.DeleteRoot(ctx, connect.NewRequest(&RootRequest{Root: "درس"}))
	require.NoError(t, err)
}

func TestLexiconServiceMorphology(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	gen, err := client.Generate(ctx, connect.NewRequest(&RootRequest{Root: "كتب"}))
	require.NoError(t, err)
	assert.Equal(t, []lexicon.Derivation{{Scheme: "فاعل", Word: "كاتب"}, {Scheme: "مفعول", Word: "مكتوب"}}, gen.Msg.Derivations)

	_, err = client.Generate(ctx, connect.NewRequest(&RootRequest{Root: "سمع"}))
	assert.Equal(t, connect.CodeNotFound, codeOf(err))

	ver, err := client.Verify(ctx, connect.NewRequest(&VerifyRequest{Word: "كاتب", Root: "كتب"}))
	require.NoError(t, err)
	assert.True(t, ver.Msg.Valid)
	assert.Equal(t, "فاعل", ver.Msg.Scheme)

	ver, err = client.Verify(ctx, connect.NewRequest(&VerifyRequest{Word: "كتاب", Root: "كتب"}))
	require.NoError(t, err)
	assert.False(t, ver.Msg.Valid)

	id, err := client.Identify(ctx, connect.NewRequest(&IdentifyRequest{Word: "مكتوب"}))
	require.NoError(t, err)
	assert.Equal(t, []lexicon.Match{{Root: "كتب", Scheme: "مفعول", Word: "مكتوب"}}, id.Msg.Matches)

	id, err = client.Identify(ctx, connect.NewRequest(&IdentifyRequest{Word: "قلم"}))
	require.NoError(t, err, "no match is not an error")
	assert.Empty(t, id.Msg.Matches)
}

func TestLexiconServiceSchemes(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	added, err := client.AddScheme(ctx, connect.NewRequest(&SchemeRequest{Name: "فعال"}))
	require.NoError(t, err)
	assert.Equal(t, scheme.Scheme{Name: "فعال", Category: scheme.DefaultCategory}, added.Msg.Scheme)

	_, err = client.AddScheme(ctx, connect.NewRequest(&SchemeRequest{Name: "فعال"}))
	assert.Equal(t, connect.CodeAlreadyExists, codeOf(err))

	empty := ""
	added, err = client.AddScheme(ctx, connect.NewRequest(&SchemeRequest{Name: "فعيل", Category: &empty}))
	require.NoError(t, err)
	assert.Equal(t, scheme.Scheme{Name: "فعيل", Category: ""}, added.Msg.Scheme)

	_, err = client.AddScheme(ctx, connect.NewRequest(&SchemeRequest{Name: "مف,عول"}))
	assert.Equal(t, connect.CodeInvalidArgument, codeOf(err))
	_, err = client.AddScheme(ctx, connect.NewRequest(&SchemeRequest{Name: "فاعل\nفعال"}))
	assert.Equal(t, connect.CodeInvalidArgument, codeOf(err))

	list, err := client.ListSchemes(ctx, connect.NewRequest(&ListSchemesRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Schemes, 4)
	assert.Equal(t, "فعال", list.Msg.Schemes[2].Name)
	assert.Equal(t, scheme.Scheme{Name: "فعيل", Category: ""}, list.Msg.Schemes[3])

	_, err = client.RemoveScheme(ctx, connect.NewRequest(&SchemeRequest{Name: "فعول"}))
	assert.Equal(t, connect.CodeNotFound, codeOf(err))
	_, err = client.RemoveScheme(ctx, connect.NewRequest(&SchemeRequest{Name: "فعال"}))
	require.NoError(t, err)
}
