package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/quartzui/quartz/pkg/dom"
	"github.com/quartzui/quartz/pkg/protocol"
	"github.com/quartzui/quartz/pkg/renderer"
	"github.com/quartzui/quartz/pkg/scheduler"
	"github.com/quartzui/quartz/pkg/vdom"
)

var nextSessionID uint64

// Session is one live connection: its own document, update queue and
// renderer, mirrored to the client as protocol ops. All rendering happens
// on the session's read loop, so a session needs no internal
// synchronization beyond the ops buffer.
type Session struct {
	id     uint64
	server *Server
	conn   *websocket.Conn
	logger *slog.Logger

	doc   *dom.Document
	queue *scheduler.Queue
	rend  *renderer.Renderer
	root  *vdom.VNode

	mu  sync.Mutex
	ops []protocol.Op
}

func newSession(s *Server, conn *websocket.Conn) *Session {
	sess := &Session{
		id:     atomic.AddUint64(&nextSessionID, 1),
		server: s,
		conn:   conn,
	}
	sess.logger = s.logger.With("session", sess.id)
	sess.doc = dom.NewDocument(dom.WithRecorder(sess.recordOp))
	sess.queue = scheduler.NewQueue()
	sess.rend = renderer.New(sess.doc, renderer.WithQueue(sess.queue), renderer.WithLogger(sess.logger))
	return sess
}

func (s *Session) recordOp(op protocol.Op) {
	s.mu.Lock()
	s.ops = append(s.ops, op)
	s.mu.Unlock()
}

// takeOps drains the op buffer.
func (s *Session) takeOps() []protocol.Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := s.ops
	s.ops = nil
	return ops
}

// run mounts the root component, streams the initial ops, then serves the
// event loop until the connection closes or the context is canceled.
func (s *Session) run(ctx context.Context) {
	defer s.conn.Close()

	cfg := s.server.config
	s.conn.SetReadLimit(cfg.MaxMessageSize)

	s.root = vdom.H(s.server.root())
	s.rend.Render(s.root, s.doc.Body)
	s.queue.Flush()
	defer s.rend.Unmount(s.root)

	if err := s.sendOps(s.takeOps()); err != nil {
		s.logger.Error("initial ops send failed", "error", err)
		return
	}
	s.logger.Info("session started", "remote", s.conn.RemoteAddr())

	for {
		if ctx.Err() != nil {
			return
		}
		if cfg.ReadTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		}
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("session read failed", "error", err)
			} else {
				s.logger.Info("session closed")
			}
			return
		}

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			s.logger.Warn("bad frame", "error", err)
			s.sendError(err.Error())
			continue
		}
		if frame.Type != protocol.FrameEvent {
			s.logger.Warn("unexpected frame", "type", frame.Type)
			continue
		}

		if err := s.dispatch(ctx, frame.Event); err != nil {
			s.logger.Warn("event dispatch failed", "error", err,
				"node", frame.Event.NodeID, "event", frame.Event.Name)
			s.sendError(err.Error())
			continue
		}
		if err := s.sendOps(s.takeOps()); err != nil {
			s.logger.Error("ops send failed", "error", err)
			return
		}
	}
}

// dispatch routes one client event into the document and flushes the
// resulting component updates.
func (s *Session) dispatch(ctx context.Context, ev *protocol.Event) error {
	start := time.Now()
	_, span := s.server.tracer.Start(ctx, "session.dispatch")
	span.SetAttributes(
		attribute.Int64("quartz.session_id", int64(s.id)),
		attribute.Int64("quartz.node_id", int64(ev.NodeID)),
		attribute.String("quartz.event", ev.Name),
	)
	defer span.End()

	err := s.doc.Dispatch(ev.NodeID, ev.Name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		return err
	}
	s.queue.Flush()

	if s.server.metrics != nil {
		s.server.metrics.ObserveEvent(time.Since(start))
	}
	return nil
}

func (s *Session) sendOps(ops []protocol.Op) error {
	if len(ops) == 0 {
		return nil
	}
	data, err := protocol.EncodeOps(ops)
	if err != nil {
		return err
	}
	return s.write(data)
}

func (s *Session) sendError(msg string) {
	data, err := protocol.EncodeError(msg)
	if err != nil {
		return
	}
	if err := s.write(data); err != nil {
		s.logger.Warn("error frame send failed", "error", err)
	}
}

func (s *Session) write(data []byte) error {
	if t := s.server.config.WriteTimeout; t > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(t))
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
