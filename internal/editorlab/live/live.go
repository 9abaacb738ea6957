// Живой предпросмотр экспорта через вебсокет.
//
// Клиент присылает снимок редактора текстовым кадром, сервер отвечает результатом экспорта или
// ошибкой разбора. Соединение при ошибке не закрывается.
package live

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aisa-it/editorlab/internal/editorlab/editor/exporter"
	"github.com/aisa-it/editorlab/internal/editorlab/editor/host"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gofrs/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	pingPeriod = time.Second * 20
	timeout    = time.Minute
)

var ErrClosed = errors.New("live preview is closed")

// Frame - ответ на снимок. Raw содержит то же, что HTML, либо заглушку для пустого результата.
type Frame struct {
	HTML string `json:"html"`
	Raw  string `json:"raw"`
}

type ErrorFrame struct {
	Error string `json:"error"`
}

type Service struct {
	registry  *host.Registry
	exporter  *exporter.Exporter
	readLimit int64
	gauge     prometheus.Gauge
	// хосты Origin, которым разрешено подключаться помимо своего
	originPatterns []string

	sessions map[uuid.UUID]*websocket.Conn
	closed   bool
	mutex    sync.RWMutex
}

type Option func(*Service)

// WithOriginPatterns разрешает подключения со страниц других хостов. Шаблоны сравниваются с хостом
// из заголовка Origin через path.Match, страницы того же хоста разрешены всегда.
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Service) {
		s.originPatterns = append(s.originPatterns, patterns...)
	}
}

// NewService создает сервис. gauge может быть nil.
func NewService(registry *host.Registry, exp *exporter.Exporter, readLimit int64, gauge prometheus.Gauge, opts ...Option) *Service {
	s := &Service{
		registry:  registry,
		exporter:  exp,
		readLimit: readLimit,
		gauge:     gauge,
		sessions:  make(map[uuid.UUID]*websocket.Conn),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render разбирает снимок редактора kind и возвращает Frame или ErrorFrame.
func (s *Service) Render(kind host.Kind, snapshot []byte) any {
	doc, err := s.registry.Decode(kind, bytes.NewReader(snapshot))
	if err != nil {
		return ErrorFrame{Error: err.Error()}
	}
	html := s.exporter.HTML(doc)
	return Frame{HTML: html, Raw: exporter.DisplayText(html)}
}

// Handle обслуживает соединение до его закрытия клиентом или вызова CloseAll.
func (s *Service) Handle(kind host.Kind, w http.ResponseWriter, req *http.Request) error {
	s.mutex.RLock()
	closed := s.closed
	s.mutex.RUnlock()
	if closed {
		return ErrClosed
	}

	c, err := websocket.Accept(w, req, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		return err
	}
	defer c.CloseNow()
	if s.readLimit > 0 {
		c.SetReadLimit(s.readLimit)
	}

	conId := uuid.Must(uuid.NewV4())
	if err := s.add(conId, c); err != nil {
		// CloseAll успел пройти между проверкой и подключением
		c.Close(websocket.StatusGoingAway, "server shutdown")
		return nil
	}
	defer s.remove(conId)

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	go s.pingLoop(ctx, conId, c)

	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				slog.Debug("Live preview read", "editor", kind, "err", err)
			}
			return nil
		}

		var resp any
		if typ != websocket.MessageText {
			resp = ErrorFrame{Error: "binary frames are not supported"}
		} else {
			resp = s.Render(kind, data)
		}

		wctx, wcancel := context.WithTimeout(ctx, timeout)
		err = wsjson.Write(wctx, c, resp)
		wcancel()
		if err != nil {
			slog.Debug("Live preview write", "editor", kind, "err", err)
			return nil
		}
	}
}

// Count возвращает число открытых соединений.
func (s *Service) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

// CloseAll закрывает все соединения и запрещает новые. Соединения закрываются параллельно и вне
// блокировки: Close ждет ответного кадра клиента.
func (s *Service) CloseAll() {
	s.mutex.Lock()
	s.closed = true
	conns := make([]*websocket.Conn, 0, len(s.sessions))
	for _, con := range s.sessions {
		conns = append(conns, con)
	}
	s.mutex.Unlock()

	var wg sync.WaitGroup
	for _, con := range conns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			con.Close(websocket.StatusGoingAway, "server shutdown")
		}()
	}
	wg.Wait()
}

// add регистрирует соединение. После CloseAll возвращает ErrClosed.
func (s *Service) add(id uuid.UUID, c *websocket.Conn) error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return ErrClosed
	}
	s.sessions[id] = c
	s.mutex.Unlock()
	if s.gauge != nil {
		s.gauge.Inc()
	}
	return nil
}

func (s *Service) remove(id uuid.UUID) {
	s.mutex.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mutex.Unlock()
	if ok && s.gauge != nil {
		s.gauge.Dec()
	}
}

func (s *Service) pingLoop(ctx context.Context, id uuid.UUID, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err := conn.Ping(pctx)
		cancel()
		if err != nil {
			slog.Debug("Ping to websocket failed", "session", id, "err", err)
			conn.Close(websocket.StatusNormalClosure, "Ping failed, connection closed")
			return
		}
	}
}
