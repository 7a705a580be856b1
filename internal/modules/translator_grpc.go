package modules

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// translatorProto is the wire contract of the external translator daemon.
// It is parsed at runtime with protoparse, so no generated stubs are
// checked in.
const translatorProto = `
syntax = "proto3";
package nixtranslate;

service Translator {
  rpc Translate(TranslateRequest) returns (TranslateReply);
}

message TranslateRequest {
  string origin_path = 1;
  bytes source = 2;
}

message TranslateReply {
  string go_source = 1;
  string source_map = 2;
  string package_name = 3;
}
`

var (
	translatorDescOnce sync.Once
	translatorDesc     *desc.FileDescriptor
	translatorDescErr  error
)

func translatorDescriptor() (*desc.FileDescriptor, error) {
	translatorDescOnce.Do(func() {
		parser := protoparse.Parser{
			Accessor: func(name string) (io.ReadCloser, error) {
				if name == "translator.proto" {
					return io.NopCloser(strings.NewReader(translatorProto)), nil
				}
				return nil, fmt.Errorf("unknown proto file %q", name)
			},
		}
		fds, err := parser.ParseFiles("translator.proto")
		if err != nil {
			translatorDescErr = err
			return
		}
		translatorDesc = fds[0]
	})
	return translatorDesc, translatorDescErr
}

// Translation is one reply from the translator daemon: the generated Go
// source of a module plus its inline source map.
type Translation struct {
	GoSource    string
	SourceMap   string
	PackageName string
}

// SourceTranslator produces generated Go source for a Nix file. It feeds
// the codegen pipeline; the runtime itself instantiates modules through
// the AOT registry.
type SourceTranslator interface {
	TranslateSource(ctx context.Context, originPath string, source []byte) (*Translation, error)
}

// GrpcTranslator talks to the external translator daemon over gRPC with
// dynamic messages.
type GrpcTranslator struct {
	conn *grpc.ClientConn
}

// DialTranslator connects to a translator daemon.
func DialTranslator(target string) (*GrpcTranslator, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to translator at %s: %w", target, err)
	}
	return &GrpcTranslator{conn: conn}, nil
}

// Close releases the daemon connection.
func (t *GrpcTranslator) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

func (t *GrpcTranslator) TranslateSource(ctx context.Context, originPath string, source []byte) (*Translation, error) {
	fd, err := translatorDescriptor()
	if err != nil {
		return nil, err
	}
	svc := fd.FindService("nixtranslate.Translator")
	if svc == nil {
		return nil, fmt.Errorf("translator proto is missing the Translator service")
	}
	md := svc.FindMethodByName("Translate")
	if md == nil {
		return nil, fmt.Errorf("translator proto is missing the Translate method")
	}

	req := dynamic.NewMessage(md.GetInputType())
	req.SetFieldByName("origin_path", originPath)
	req.SetFieldByName("source", source)
	resp := dynamic.NewMessage(md.GetOutputType())

	if err := t.conn.Invoke(ctx, "/nixtranslate.Translator/Translate", req, resp); err != nil {
		return nil, fmt.Errorf("translate RPC for %s: %w", originPath, err)
	}

	out := &Translation{}
	if v, ok := resp.GetFieldByName("go_source").(string); ok {
		out.GoSource = v
	}
	if v, ok := resp.GetFieldByName("source_map").(string); ok {
		out.SourceMap = v
	}
	if v, ok := resp.GetFieldByName("package_name").(string); ok {
		out.PackageName = v
	}
	if out.GoSource == "" {
		return nil, fmt.Errorf("translator returned no source for %s", originPath)
	}
	return out, nil
}
