package notestore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/async"
	"github.com/xxxsen/notetoc/internal/notestore/edam"
)

type ThriftClientOptions struct {
	URL        string
	HTTPClient *http.Client
	UserAgent  string
}

// ThriftClient speaks the NoteStore Thrift binary protocol over HTTP to one
// note store URL. Each call opens its own transport, so a client may be
// shared between goroutines.
type ThriftClient struct {
	url        string
	httpClient *http.Client
	userAgent  string
}

func NewThriftClient(opts ThriftClientOptions) *ThriftClient {
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = "notetoc"
	}
	return &ThriftClient{
		url:        strings.TrimSpace(opts.URL),
		httpClient: opts.HTTPClient,
		userAgent:  userAgent,
	}
}

func (c *ThriftClient) FindNotesMetadata(ctx context.Context, authToken string, filter NoteFilter, offset, maxNotes int, spec ResultSpec, cb async.Callback[*NotesMetadataList]) {
	async.Go(func() (*NotesMetadataList, error) {
		var out *edam.NotesMetadataList
		err := c.call(ctx, edam.MethodFindNotesMetadata, func(ns *edam.NoteStoreClient) (err error) {
			out, err = ns.FindNotesMetadata(ctx, authToken, filterToWire(filter), int32(offset), int32(maxNotes), specToWire(spec))
			return err
		})
		if err != nil {
			return nil, err
		}
		return listFromWire(out), nil
	}, cb)
}

func (c *ThriftClient) GetNote(ctx context.Context, authToken, guid string, withContent, withResources, withRecognition, withAlternateData bool, cb async.Callback[*Note]) {
	async.Go(func() (*Note, error) {
		var out *edam.Note
		err := c.call(ctx, edam.MethodGetNote, func(ns *edam.NoteStoreClient) (err error) {
			out, err = ns.GetNote(ctx, authToken, guid, withContent, withResources, withRecognition, withAlternateData)
			return err
		})
		if err != nil {
			return nil, err
		}
		return noteFromWire(out), nil
	}, cb)
}

func (c *ThriftClient) CreateNote(ctx context.Context, authToken string, note *Note, cb async.Callback[*Note]) {
	async.Go(func() (*Note, error) {
		var out *edam.Note
		err := c.call(ctx, edam.MethodCreateNote, func(ns *edam.NoteStoreClient) (err error) {
			out, err = ns.CreateNote(ctx, authToken, noteToWire(note))
			return err
		})
		if err != nil {
			return nil, err
		}
		return noteFromWire(out), nil
	}, cb)
}

func (c *ThriftClient) UpdateNote(ctx context.Context, authToken string, note *Note, cb async.Callback[*Note]) {
	async.Go(func() (*Note, error) {
		var out *edam.Note
		err := c.call(ctx, edam.MethodUpdateNote, func(ns *edam.NoteStoreClient) (err error) {
			out, err = ns.UpdateNote(ctx, authToken, noteToWire(note))
			return err
		})
		if err != nil {
			return nil, err
		}
		return noteFromWire(out), nil
	}, cb)
}

func (c *ThriftClient) GetNoteTagNames(ctx context.Context, authToken, guid string, cb async.Callback[[]string]) {
	async.Go(func() ([]string, error) {
		var out []string
		err := c.call(ctx, edam.MethodGetNoteTagNames, func(ns *edam.NoteStoreClient) (err error) {
			out, err = ns.GetNoteTagNames(ctx, authToken, guid)
			return err
		})
		return out, err
	}, cb)
}

func (c *ThriftClient) call(ctx context.Context, method string, fn func(*edam.NoteStoreClient) error) error {
	if c.url == "" {
		return fmt.Errorf("note store url is empty")
	}
	trans, err := thrift.NewTHttpClientWithOptions(c.url, thrift.THttpClientOptions{Client: c.httpClient})
	if err != nil {
		return fmt.Errorf("note store %s: %w", method, err)
	}
	defer func() { _ = trans.Close() }()
	if hc, ok := trans.(*thrift.THttpClient); ok {
		hc.SetHeader("User-Agent", c.userAgent)
	}
	proto := thrift.NewTBinaryProtocolConf(trans, &thrift.TConfiguration{})

	start := time.Now()
	err = fn(edam.NewNoteStoreClient(thrift.NewTStandardClient(proto, proto)))
	logutil.GetLogger(ctx).Debug("note store call",
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return translateError(method, err)
	}
	return nil
}

// translateError turns declared EDAM exceptions into *Error and wraps
// transport failures.
func translateError(method string, err error) error {
	var ue *edam.UserException
	var se *edam.SystemException
	var ne *edam.NotFoundException
	switch {
	case errors.As(err, &ue):
		return &Error{Kind: KindUser, Code: int(ue.ErrorCode), Parameter: ue.Parameter}
	case errors.As(err, &se):
		return &Error{Kind: KindSystem, Code: int(se.ErrorCode), Message: se.Message, RateLimitDuration: int(se.RateLimitDuration)}
	case errors.As(err, &ne):
		return &Error{Kind: KindNotFound, Identifier: ne.Identifier, Key: ne.Key}
	}
	return fmt.Errorf("note store %s: %w", method, err)
}
