package edam

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// structWriter keeps the first write error so field writes can be chained.
type structWriter struct {
	ctx context.Context
	p   thrift.TProtocol
	err error
}

func newStructWriter(ctx context.Context, p thrift.TProtocol, name string) *structWriter {
	return &structWriter{ctx: ctx, p: p, err: p.WriteStructBegin(ctx, name)}
}

func (w *structWriter) field(name string, t thrift.TType, id int16, value func() error) {
	if w.err != nil {
		return
	}
	if w.err = w.p.WriteFieldBegin(w.ctx, name, t, id); w.err != nil {
		return
	}
	if w.err = value(); w.err != nil {
		return
	}
	w.err = w.p.WriteFieldEnd(w.ctx)
}

func (w *structWriter) str(name string, id int16, v string) {
	w.field(name, thrift.STRING, id, func() error { return w.p.WriteString(w.ctx, v) })
}

func (w *structWriter) optStr(name string, id int16, v string) {
	if v != "" {
		w.str(name, id, v)
	}
}

func (w *structWriter) i32(name string, id int16, v int32) {
	w.field(name, thrift.I32, id, func() error { return w.p.WriteI32(w.ctx, v) })
}

func (w *structWriter) optI64(name string, id int16, v int64) {
	if v != 0 {
		w.field(name, thrift.I64, id, func() error { return w.p.WriteI64(w.ctx, v) })
	}
}

func (w *structWriter) boolean(name string, id int16, v bool) {
	w.field(name, thrift.BOOL, id, func() error { return w.p.WriteBool(w.ctx, v) })
}

func (w *structWriter) optTrue(name string, id int16, v bool) {
	if v {
		w.boolean(name, id, v)
	}
}

func (w *structWriter) optStrings(name string, id int16, v []string) {
	if len(v) > 0 {
		w.field(name, thrift.LIST, id, func() error { return writeStrings(w.ctx, w.p, v) })
	}
}

func (w *structWriter) optStruct(name string, id int16, s thrift.TStruct, present bool) {
	if present {
		w.field(name, thrift.STRUCT, id, func() error { return s.Write(w.ctx, w.p) })
	}
}

func (w *structWriter) close() error {
	if w.err != nil {
		return w.err
	}
	if err := w.p.WriteFieldStop(w.ctx); err != nil {
		return err
	}
	return w.p.WriteStructEnd(w.ctx)
}

// readStruct walks the fields of one struct. field reports whether it
// consumed the value; anything it leaves is skipped.
func readStruct(ctx context.Context, p thrift.TProtocol, field func(id int16, t thrift.TType) (bool, error)) error {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, t, id, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if t == thrift.STOP {
			break
		}
		handled, err := field(id, t)
		if err != nil {
			return err
		}
		if !handled {
			if err := p.Skip(ctx, t); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(ctx)
}

func writeStrings(ctx context.Context, p thrift.TProtocol, v []string) error {
	if err := p.WriteListBegin(ctx, thrift.STRING, len(v)); err != nil {
		return err
	}
	for _, s := range v {
		if err := p.WriteString(ctx, s); err != nil {
			return err
		}
	}
	return p.WriteListEnd(ctx)
}

func readStrings(ctx context.Context, p thrift.TProtocol) ([]string, error) {
	elem, size, err := p.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	if elem != thrift.STRING {
		return nil, fmt.Errorf("expected list<string>, got element type %v", elem)
	}
	out := make([]string, 0, size)
	for i := 0; i < size; i++ {
		s, err := p.ReadString(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, p.ReadListEnd(ctx)
}
