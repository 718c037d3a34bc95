package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	xlogger "CryptoIntel/pkg/logger"

	"github.com/google/uuid"
)

var (
	errAlertStoreMissing   = models.ConfigurationMissing("Alert store is not configured")
	errAlertHistoryMissing = models.ConfigurationMissing("Alert history is not configured")
)

// AlertsUseCase manages price alerts and reports which of them have fired.
type AlertsUseCase struct {
	store   drepo.AlertStore
	quotes  drepo.QuoteSource
	events  drepo.AlertEventPublisher
	history drepo.AlertEventStore
	metrics drepo.Metrics
	logger  *xlogger.Logger
	timeout time.Duration
	now     func() time.Time

	mu        sync.Mutex
	published map[string]struct{}
}

// maxPublished bounds the set of event ids already sent by this process.
const maxPublished = 10000

// NewAlertsUseCase builds the use case. events and history are optional.
func NewAlertsUseCase(store drepo.AlertStore, quotes drepo.QuoteSource, events drepo.AlertEventPublisher, history drepo.AlertEventStore, m drepo.Metrics, logger *xlogger.Logger) *AlertsUseCase {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &AlertsUseCase{
		store:   store,
		quotes:  quotes,
		events:  events,
		history: history,
		metrics: m,
		logger:  logger,
		timeout:   10 * time.Second,
		now:       time.Now,
		published: make(map[string]struct{}),
	}
}

// List returns the caller's alerts, newest first, each evaluated against the current price.
func (uc *AlertsUseCase) List(ctx context.Context, userID string) ([]models.AlertStatus, error) {
	if uc.store == nil {
		return nil, errAlertStoreMissing
	}
	alerts, err := uc.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.AlertStatus, len(alerts))
	for i := range alerts {
		out[i] = models.AlertStatus{Alert: alerts[i]}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type item struct {
		idx   int
		price float64
		ok    bool
	}
	ch := make(chan item, len(alerts))
	var wg sync.WaitGroup
	for i, a := range alerts {
		if a.AlertType != models.AlertTypePrice {
			continue
		}
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			price, ok := uc.lookup(lookupCtx, symbol)
			ch <- item{idx: i, price: price, ok: ok}
		}(i, a.TokenSymbol)
	}
	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if !it.ok {
			continue
		}
		st := &out[it.idx]
		st.CurrentValue = it.price
		st.Triggered = st.Crossed(it.price)
	}

	uc.publishTriggered(ctx, out)
	return out, nil
}

func (uc *AlertsUseCase) lookup(ctx context.Context, symbol string) (float64, bool) {
	if uc.quotes == nil {
		return 0, false
	}
	q, err := uc.quotes.Quote(ctx, strings.ToLower(symbol), false)
	if err != nil {
		uc.logger.Debug("alert price lookup failed", xlogger.String("token", symbol), xlogger.Error(err))
		return 0, false
	}
	return q.Price, true
}

// triggeredEventID is stable for one alert configuration: every evaluation of the same
// crossing yields the same id.
func triggeredEventID(a models.Alert) string {
	key := strings.Join([]string{
		a.ID,
		a.UpdatedAt.UTC().Format(time.RFC3339Nano),
		strconv.FormatFloat(a.ThresholdValue, 'f', -1, 64),
		string(a.Direction),
	}, "|")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

func (uc *AlertsUseCase) publishTriggered(ctx context.Context, statuses []models.AlertStatus) {
	if uc.events == nil {
		return
	}
	now := uc.now()
	var events []models.AlertTriggeredEvent
	uc.mu.Lock()
	for _, st := range statuses {
		if !st.Triggered || !st.IsActive {
			continue
		}
		id := triggeredEventID(st.Alert)
		if _, seen := uc.published[id]; seen {
			continue
		}
		events = append(events, models.AlertTriggeredEvent{
			EventID:        id,
			AlertID:        st.ID,
			UserID:         st.UserID,
			TokenSymbol:    st.TokenSymbol,
			AlertType:      string(st.AlertType),
			Direction:      string(st.Direction),
			ThresholdValue: st.ThresholdValue,
			CurrentValue:   st.CurrentValue,
			TriggeredAt:    now,
		})
	}
	uc.mu.Unlock()
	if len(events) == 0 {
		return
	}

	if err := uc.events.Publish(ctx, events); err != nil {
		ids := make([]string, len(events))
		for i, ev := range events {
			ids[i] = ev.AlertID
		}
		uc.logger.Warn("publish triggered alerts failed", xlogger.Strings("alert_ids", ids), xlogger.Error(err))
		if uc.metrics != nil {
			uc.metrics.RecordError("alert_publish")
		}
		return
	}

	uc.mu.Lock()
	if len(uc.published)+len(events) > maxPublished {
		uc.published = make(map[string]struct{})
	}
	for _, ev := range events {
		uc.published[ev.EventID] = struct{}{}
	}
	uc.mu.Unlock()
	if uc.metrics != nil {
		for _, ev := range events {
			uc.metrics.RecordAlertTriggered(ev.AlertType)
		}
	}
}

func (uc *AlertsUseCase) Create(ctx context.Context, userID string, req *models.CreateAlertRequest) ([]models.Alert, error) {
	if uc.store == nil {
		return nil, errAlertStoreMissing
	}
	return uc.store.Create(ctx, userID, models.NewAlert{
		TokenSymbol:    req.TokenSymbol,
		AlertType:      models.AlertType(req.AlertType),
		ThresholdValue: req.ThresholdValue.Float64(),
		Direction:      models.Direction(req.Direction),
	})
}

func (uc *AlertsUseCase) Update(ctx context.Context, userID string, req *models.UpdateAlertRequest) ([]models.Alert, error) {
	if uc.store == nil {
		return nil, errAlertStoreMissing
	}
	var patch models.AlertPatch
	patch.IsActive = req.IsActive
	if req.ThresholdValue != nil {
		v := req.ThresholdValue.Float64()
		patch.ThresholdValue = &v
	}
	if req.Direction != nil {
		d := models.Direction(*req.Direction)
		patch.Direction = &d
	}
	return uc.store.Update(ctx, userID, req.AlertID, patch)
}

func (uc *AlertsUseCase) Delete(ctx context.Context, userID, alertID string) error {
	if uc.store == nil {
		return errAlertStoreMissing
	}
	return uc.store.Delete(ctx, userID, alertID)
}

// History returns the caller's most recent triggered alert events.
func (uc *AlertsUseCase) History(ctx context.Context, userID string, limit int) ([]models.AlertTriggeredEvent, error) {
	if uc.history == nil {
		return nil, errAlertHistoryMissing
	}
	events, err := uc.history.Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.AlertTriggeredEvent{}
	}
	return events, nil
}
