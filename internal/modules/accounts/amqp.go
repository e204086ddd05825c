package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/config"
)

// cashoutMessage is the queue payload consumed by the operator's cashout
// worker
type cashoutMessage struct {
	TxnID       string  `json:"txn_id"`
	TxnRefID    string  `json:"txn_ref_id"`
	UserID      string  `json:"user_id"`
	OperatorID  string  `json:"operator_id"`
	GameID      string  `json:"game_id"`
	Token       string  `json:"token"`
	Amount      float64 `json:"amount"`
	TxnType     int     `json:"txn_type"`
	Description string  `json:"description"`
}

// CashoutPublisher publishes credit requests to the cashout queue
type CashoutPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewCashoutPublisher dials the broker and declares the cashout queue
func NewCashoutPublisher(cfg config.AMQPConfig) (*CashoutPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(cfg.CashoutQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", cfg.CashoutQueue, err)
	}

	return &CashoutPublisher{conn: conn, ch: ch, queue: cfg.CashoutQueue}, nil
}

// Publish enqueues one credit as a persistent message
func (p *CashoutPublisher) Publish(ctx context.Context, req CreditRequest) error {
	txnID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate txn id: %w", err)
	}

	msg := cashoutMessage{
		TxnID:       txnID.String(),
		TxnRefID:    req.TxnRefID,
		UserID:      req.UserID,
		OperatorID:  req.OperatorID,
		GameID:      req.GameID,
		Token:       req.Token,
		Amount:      req.Amount,
		TxnType:     TxnTypeCredit,
		Description: fmt.Sprintf("%.2f credited for Teen Patti game for Round %d", req.Amount, req.RoundID),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode cashout: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish cashout: %w", err)
	}
	return nil
}

// Close releases the channel and connection
func (p *CashoutPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
