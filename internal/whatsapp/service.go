package whatsapp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.mau.fi/whatsmeow"
	waE2E "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waTypes "go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"

	"github.com/orderkart/orderkart/config"
)

// Service wraps a single whatsmeow client used to send order summaries
// directly to a WhatsApp contact. Pairing state lives in a sqlite store under
// the application workdir; the frontend renders the QR from the raw code
// string exposed here.
type Service struct {
	client *whatsmeow.Client
	store  *sqlstore.Container

	qr     string
	qrLock sync.RWMutex
}

// New opens the sqlite-backed whatsmeow store and prepares (but does not
// connect) the client.
func New(ctx context.Context, cfg *config.AppConfig) (*Service, error) {
	dbPath := filepath.Join(cfg.GetDataDir(), cfg.Whatsapp.StoreFile)
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", dbPath), nil)
	if err != nil {
		return nil, errors.Wrap(err, "open whatsapp store")
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load whatsapp device")
	}

	svc := &Service{
		client: whatsmeow.NewClient(device, nil),
		store:  container,
	}
	svc.client.AddEventHandler(svc.handleEvent)

	setGlobalService(svc)
	zap.L().Info("whatsapp: service initialized",
		zap.String("store", dbPath),
		zap.Bool("paired", svc.client.Store.ID != nil))
	return svc, nil
}

func (s *Service) handleEvent(evt interface{}) {
	switch e := evt.(type) {
	case *events.QR:
		if len(e.Codes) > 0 {
			s.setQR(e.Codes[0])
			zap.L().Info("whatsapp: qr code received", zap.Int("codes", len(e.Codes)))
		}
	case *events.Connected:
		s.setQR("")
		zap.L().Info("whatsapp: connected")
	case *events.LoggedOut:
		zap.L().Warn("whatsapp: logged out, re-pairing required")
	}
}

func (s *Service) setQR(code string) {
	s.qrLock.Lock()
	s.qr = code
	s.qrLock.Unlock()
}

// GetQRCode returns the latest pairing QR code string, empty when there is
// no outstanding QR to scan.
func (s *Service) GetQRCode() string {
	s.qrLock.RLock()
	defer s.qrLock.RUnlock()
	return s.qr
}

// ConnectAsync triggers a non-blocking connect attempt. A fresh QR event is
// emitted when the device is not paired yet; connect errors are logged.
func (s *Service) ConnectAsync() {
	go func() {
		if err := s.client.Connect(); err != nil {
			zap.L().Warn("whatsapp: client connect failed", zap.Error(err))
		}
	}()
}

// Connected reports whether the client holds a live connection.
func (s *Service) Connected() bool {
	return s.client.IsConnected()
}

// Paired reports whether a device identity is stored.
func (s *Service) Paired() bool {
	return s.client.Store.ID != nil
}

// SendText sends a plain text message. jid accepts either a full JID
// ("62812xxxx@s.whatsapp.net") or a bare phone number.
func (s *Service) SendText(ctx context.Context, jid, text string) error {
	if s == nil {
		return errors.New("whatsapp service not initialized")
	}
	if !s.client.IsConnected() {
		return errors.New("whatsapp client not connected")
	}

	var parsed waTypes.JID
	if strings.Contains(jid, "@") {
		var err error
		parsed, err = waTypes.ParseJID(jid)
		if err != nil {
			return errors.Wrap(err, "parse jid")
		}
	} else {
		parsed = waTypes.NewJID(strings.TrimLeft(jid, "+"), waTypes.DefaultUserServer)
	}

	msg := &waE2E.Message{Conversation: proto.String(text)}
	if _, err := s.client.SendMessage(ctx, parsed, msg); err != nil {
		zap.L().Warn("whatsapp: send message failed", zap.Error(err), zap.String("jid", jid))
		return errors.Wrap(err, "send message")
	}
	zap.L().Info("whatsapp: message sent", zap.String("jid", jid))
	return nil
}

// Stop disconnects the client.
func (s *Service) Stop() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

var (
	globalSvc     *Service
	globalSvcLock sync.RWMutex
)

func setGlobalService(s *Service) {
	globalSvcLock.Lock()
	defer globalSvcLock.Unlock()
	globalSvc = s
}

// Get returns the running service instance, nil when disabled.
func Get() *Service {
	globalSvcLock.RLock()
	defer globalSvcLock.RUnlock()
	return globalSvc
}
