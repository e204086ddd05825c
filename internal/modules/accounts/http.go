package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/config"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

const (
	detailPath  = "/service/user/detail"
	balancePath = "/service/operator/user/balance/v2"
)

// httpService reaches the operator over HTTP for lookups and debits, and
// hands credits to a publisher for asynchronous delivery.
type httpService struct {
	baseURL   string
	client    *http.Client
	publisher CreditPublisher
}

// CreditPublisher delivers credit requests out of band
type CreditPublisher interface {
	Publish(ctx context.Context, req CreditRequest) error
}

// NewService creates the upstream ledger client
func NewService(cfg config.AccountsConfig, publisher CreditPublisher) Service {
	return &httpService{
		baseURL:   cfg.BaseURL,
		client:    &http.Client{Timeout: cfg.Timeout},
		publisher: publisher,
	}
}

type detailResponse struct {
	Status bool `json:"status"`
	User   struct {
		UserID     string  `json:"user_id"`
		OperatorID string  `json:"operator_id"`
		Balance    float64 `json:"balance"`
		Image      int     `json:"image"`
	} `json:"user"`
}

func (s *httpService) FetchPlayer(ctx context.Context, token, gameID string) (*PlayerDetail, error) {
	url := s.baseURL + detailPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build detail request: %w", err)
	}
	req.Header.Set("token", token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch player detail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch player detail: upstream status %d: %s", resp.StatusCode, body)
	}

	var out detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode player detail: %w", err)
	}
	if !out.Status || out.User.UserID == "" {
		return nil, fmt.Errorf("fetch player detail: upstream rejected token")
	}

	return &PlayerDetail{
		UserID:     out.User.UserID,
		OperatorID: out.User.OperatorID,
		Balance:    out.User.Balance,
		Image:      out.User.Image,
	}, nil
}

type balanceRequest struct {
	TxnID       string `json:"txn_id"`
	UserID      string `json:"user_id"`
	GameID      string `json:"game_id"`
	BetID       string `json:"bet_id"`
	Amount      string `json:"amount"` // fixed 2 decimals on the wire
	TxnType     int    `json:"txn_type"`
	Description string `json:"description"`
}

type balanceResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
}

func (s *httpService) Debit(ctx context.Context, req DebitRequest) (string, error) {
	txnID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate txn id: %w", err)
	}

	payload := balanceRequest{
		TxnID:       txnID.String(),
		UserID:      req.UserID,
		GameID:      req.GameID,
		BetID:       req.BetID,
		Amount:      fmt.Sprintf("%.2f", req.Amount),
		TxnType:     TxnTypeDebit,
		Description: fmt.Sprintf("%.2f debited for Teen Patti game for Round %d", req.Amount, req.RoundID),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode debit: %w", err)
	}

	url := s.baseURL + balancePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build debit request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("token", req.Token)

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("debit upstream: %w", err)
	}
	defer resp.Body.Close()

	var out balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode debit response: %w", err)
	}

	logger.Debug(ctx).
		Str("txn_id", txnID.String()).
		Float64("amount", req.Amount).
		Dur("elapsed", time.Since(start)).
		Bool("status", out.Status).
		Msg("Debit response")

	if resp.StatusCode != http.StatusOK || !out.Status {
		return "", fmt.Errorf("debit upstream: rejected (status %d, msg %q)", resp.StatusCode, out.Msg)
	}
	return txnID.String(), nil
}

func (s *httpService) Credit(ctx context.Context, req CreditRequest) error {
	return s.publisher.Publish(ctx, req)
}
