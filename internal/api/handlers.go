package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kalshi-trader/internal/errors"
	"kalshi-trader/internal/models"
	"kalshi-trader/internal/stats"
)

// GetBalance returns the account balance snapshot.
func (s *Server) GetBalance(c *gin.Context) {
	balance, err := s.gateway.GetBalance(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GetOpenPositions returns the currently open positions.
func (s *Server) GetOpenPositions(c *gin.Context) {
	positions, err := s.gateway.GetPositions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, positions)
}

// GetOpenOrders returns every order still working (NEW or PARTIALLY_FILLED).
func (s *Server) GetOpenOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.registry.OpenOrders(c.Request.Context()))
}

// PlaceOrder admits an order request and returns the resulting order.
// Replays carrying a known client order ID return the existing order.
func (s *Server) PlaceOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	order, err := s.registry.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder returns the order with the given ID.
func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.registry.Get(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetTradeStats returns trade statistics for a symbol over a window.
// The window must look like "7d" or "12h". The figures are canned until a
// fills store exists to compute them from.
func (s *Server) GetTradeStats(c *gin.Context) {
	symbol := c.Query("symbol")
	window := c.DefaultQuery("window", "30d")

	if _, err := parseWindow(window); err != nil {
		writeError(c, err)
		return
	}

	sharpe := 1.4
	c.JSON(http.StatusOK, models.TradeStats{
		Symbol:      strings.ToUpper(symbol),
		Window:      window,
		Trades:      42,
		WinRate:     0.57,
		PnL:         1234.56,
		AvgReturn:   0.0123,
		Sharpe:      &sharpe,
		LastUpdated: time.Now().UTC(),
	})
}

// parseWindow converts a "<integer>d" or "<integer>h" window into a duration.
func parseWindow(window string) (time.Duration, error) {
	if len(window) < 2 {
		return 0, apperrors.NewRequestError("window", "must be like '7d' or '12h'")
	}

	value, err := strconv.Atoi(window[:len(window)-1])
	if err != nil {
		return 0, apperrors.NewRequestError("window", "must be like '7d' or '12h'")
	}

	switch window[len(window)-1] {
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(value) * time.Hour, nil
	}
	return 0, apperrors.NewRequestError("window", "must be like '7d' or '12h'")
}

// OddsRequest is the request body for the odds report endpoint.
type OddsRequest struct {
	Probability *float64 `json:"probability"`
	Stake       float64  `json:"stake"`
}

// OddsReport is the computed betting statistics for a probability.
type OddsReport struct {
	Probability    float64 `json:"probability"`
	AmericanOdds   float64 `json:"american_odds"`
	DecimalOdds    float64 `json:"decimal_odds"`
	NetOdds        float64 `json:"net_odds"`
	Stake          float64 `json:"stake"`
	ExpectedValue  float64 `json:"expected_value"`
	OptimalBetSize float64 `json:"optimal_bet_size"`
}

// GetOddsReport converts an implied probability into American, decimal and
// net odds and reports expected value and Kelly stake sizing for it.
func (s *Server) GetOddsReport(c *gin.Context) {
	var req OddsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid odds payload"})
		return
	}
	if req.Probability == nil {
		writeError(c, apperrors.NewRequestError("probability", "required"))
		return
	}
	if *req.Probability < 0 || *req.Probability > 1 {
		writeError(c, apperrors.NewRequestError("probability", "must be within [0, 1]"))
		return
	}
	stake := req.Stake
	if stake == 0 {
		stake = 1.0
	}

	calc := stats.NewCalculator(*req.Probability)
	american, err := calc.ImpliedProbabilityToAmerican(*req.Probability)
	if err != nil {
		writeError(c, err)
		return
	}
	decimal, err := calc.AmericanToDecimal(american)
	if err != nil {
		writeError(c, err)
		return
	}
	ev, err := calc.ExpectedValue(*req.Probability, american, stake)
	if err != nil {
		writeError(c, err)
		return
	}
	size, err := calc.KellyCriterion()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, OddsReport{
		Probability:    *req.Probability,
		AmericanOdds:   american,
		DecimalOdds:    decimal,
		NetOdds:        decimal - 1,
		Stake:          stake,
		ExpectedValue:  ev,
		OptimalBetSize: size,
	})
}

// writeError maps the error taxonomy onto HTTP statuses. Domain errors from
// the odds math are surfaced distinctly from malformed requests.
func writeError(c *gin.Context, err error) {
	switch {
	case apperrors.IsInvalidRequest(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsDomain(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUninitialized):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
