package lsp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/jwtly10/md2nb/internal/transformer"
	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
)

// Server is a stdio LSP server for markdown notebooks: it republishes
// conversion diagnostics on every edit and writes the notebook on save.
type Server struct {
	conn       *jsonrpc2.Conn
	docService *DocumentService
}

type Options struct {
	Transform transformer.TransformOptions
}

func NewServer(opts Options) *Server {
	return &Server{
		docService: NewDocumentService(opts.Transform),
	}
}

func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (result interface{}, err error) {
	if s.conn == nil {
		s.conn = conn
	}
	slog.Debug("received request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		slog.Info("initializing lsp server")

		var initParams lsp.InitializeParams
		if err := json.Unmarshal(*req.Params, &initParams); err != nil {
			return nil, err
		}

		syncKind := lsp.TDSKFull
		return lsp.InitializeResult{
			Capabilities: lsp.ServerCapabilities{
				TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
					Kind: &syncKind,
				},
			},
		}, nil

	case "initialized":
		slog.Info("server initialized")
		return nil, nil

	case "shutdown":
		slog.Info("shutting down")
		return nil, nil

	case "exit":
		slog.Info("exiting")
		os.Exit(0)
		return nil, nil

	case "textDocument/didOpen":
		var params lsp.DidOpenTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		s.docService.Track(params.TextDocument.URI, params.TextDocument.Text)
		return nil, s.publishDiagnostics(ctx, params.TextDocument.URI)

	case "textDocument/didChange":
		var params lsp.DidChangeTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		// Full sync: the last content change carries the whole document
		if len(params.ContentChanges) > 0 {
			s.docService.Track(params.TextDocument.URI, params.ContentChanges[len(params.ContentChanges)-1].Text)
		}
		return nil, s.publishDiagnostics(ctx, params.TextDocument.URI)

	case "textDocument/didSave":
		var params lsp.DidSaveTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		outPath, err := s.docService.Convert(params.TextDocument.URI)
		if err != nil {
			// The diagnostics published on change already explain the
			// failure; saving an unconvertible document is not an RPC error
			slog.Warn("conversion on save failed", "uri", params.TextDocument.URI, "error", err)
			return nil, nil
		}

		slog.Info("wrote notebook", "uri", params.TextDocument.URI, "output", outPath)
		return nil, nil

	case "textDocument/didClose":
		var params lsp.DidCloseTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		s.docService.Forget(params.TextDocument.URI)
		return nil, s.clearDiagnostics(ctx, params.TextDocument.URI)

	case "$/cancelRequest":
		// All requests are handled synchronously; nothing to cancel
		return nil, nil

	default:
		if req.Notif {
			slog.Debug("ignoring notification", "method", req.Method)
			return nil, nil
		}
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: "method not supported: " + req.Method,
		}
	}
}

func (s *Server) publishDiagnostics(ctx context.Context, uri lsp.DocumentURI) error {
	return s.conn.Notify(ctx, "textDocument/publishDiagnostics", lsp.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: s.docService.Check(uri),
	})
}

func (s *Server) clearDiagnostics(ctx context.Context, uri lsp.DocumentURI) error {
	return s.conn.Notify(ctx, "textDocument/publishDiagnostics", lsp.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []lsp.Diagnostic{},
	})
}
