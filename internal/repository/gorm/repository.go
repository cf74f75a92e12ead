package gormrepository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"fundboard/internal/db"
	"fundboard/internal/models"
	"fundboard/internal/repository"
)

// Store executes the raw reporting queries over short-lived connections
// obtained from the provisioner. It owns no state beyond the schema
// names interpolated into the cross-database joins.
type Store struct {
	prov   *db.Provisioner
	logger *zap.Logger

	mt5Schema   string
	adminSchema string
}

func New(prov *db.Provisioner, logger *zap.Logger, mt5Schema, adminSchema string) *Store {
	return &Store{
		prov:        prov,
		logger:      logger,
		mt5Schema:   mt5Schema,
		adminSchema: adminSchema,
	}
}

// rosterQuery joins, per active login, the latest and earliest daily
// snapshots (ROW_NUMBER windows; recency ties broken by highest snapshot
// id), margin equity, challenge type metadata and trader identity, then
// keeps exactly one row per login by ranking on descending record id.
func (s *Store) rosterQuery() string {
	return fmt.Sprintf(`
SELECT login, title, category, account_size, margin_equity, daily_equity,
       challenge_balance, snapshot_at, trader_id, email, first_name, last_name, status
FROM (
    SELECT e.login, d.title, d.category,
           CAST(f_earliest.daily_balance AS CHAR) AS account_size,
           CAST(a.Equity AS CHAR) AS margin_equity,
           CAST(f_latest.equity AS CHAR) AS daily_equity,
           CAST(e.balance AS CHAR) AS challenge_balance,
           FROM_UNIXTIME(f_latest.date_time) AS snapshot_at,
           b.trader_id, c.email, c.first_name, c.last_name, b.status,
           ROW_NUMBER() OVER (PARTITION BY e.login ORDER BY e.ID DESC) AS rn
    FROM %[1]s.CHALLENGES e
    LEFT JOIN %[1]s.mt5_accounts_margin a ON a.login = e.login
    LEFT JOIN (
        SELECT login, date_time, equity,
               ROW_NUMBER() OVER (PARTITION BY login ORDER BY date_time DESC, id DESC) AS rn
        FROM %[1]s.daily
        WHERE date_time IS NOT NULL
    ) f_latest ON e.login = f_latest.login AND f_latest.rn = 1
    LEFT JOIN (
        SELECT login, daily_balance,
               ROW_NUMBER() OVER (PARTITION BY login ORDER BY date_time ASC) AS rn
        FROM %[1]s.daily
        WHERE date_time IS NOT NULL AND daily_balance IS NOT NULL
    ) f_earliest ON e.login = f_earliest.login AND f_earliest.rn = 1
    LEFT JOIN %[2]s.challenge_accounts b ON e.login = b.number
    LEFT JOIN %[2]s.traders c ON b.trader_id = c.id
    LEFT JOIN %[2]s.challenge_types d ON b.challenge_type_id = d.id
    WHERE e.status IN ('PLAYING', 'REVIEW')
) AS ranked_accounts
WHERE rn = 1
`, quoteSchema(s.mt5Schema), quoteSchema(s.adminSchema))
}

func (s *Store) RosterRows(ctx context.Context) ([]models.RawRosterRow, error) {
	var rows []models.RawRosterRow
	err := s.prov.WithAdmin(func(conn *db.DB) error {
		return conn.Gorm.WithContext(ctx).Raw(s.rosterQuery()).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// payoutRow carries the per-login JSON aggregate of upsell entries.
type payoutRow struct {
	Number       int64          `gorm:"column:number"`
	UpsaleValues datatypes.JSON `gorm:"column:upsale_values"`
}

// upsaleEntry is the wire shape of one aggregated upsell item. Both
// fields are nullable; a payout upgrade requires both to be present.
type upsaleEntry struct {
	Title *string `json:"title"`
	Value *bool   `json:"value"`
}

func (s *Store) payoutQuery() string {
	return fmt.Sprintf(`
SELECT ca.number,
       JSON_ARRAYAGG(JSON_OBJECT('title', ups.title, 'value', ups_items.val)) AS upsale_values
FROM %[1]s.challenge_accounts ca
LEFT JOIN %[1]s.challenge_types ct ON ca.challenge_type_id = ct.id
LEFT JOIN %[1]s.account_types at ON ct.account_type_id = at.id
LEFT JOIN %[1]s.task_challenge_demo_account_payloads AS demo_payload
    ON ca.id = demo_payload.challenge_account_id AND at.type = 'demo'
LEFT JOIN %[1]s.task_challenge_live_account_payloads AS live_payload
    ON ca.id = live_payload.challenge_account_id AND at.type = 'live'
LEFT JOIN %[1]s.challenge_payments cp
    ON COALESCE(demo_payload.challenge_payment_id, live_payload.challenge_payment_id) = cp.id
LEFT JOIN %[1]s.challenge_types_upsale ups
    ON JSON_CONTAINS(cp.conditions, JSON_QUOTE(ups.id), '$')
LEFT JOIN JSON_TABLE(
    ups.` + "`values`" + `,
    '$[*]' COLUMNS (
        challengeTypeId CHAR(36) PATH '$.challengeTypeId',
        val BOOLEAN PATH '$.value'
    )
) AS ups_items ON ups_items.challengeTypeId = ct.id
WHERE cp.type = 'deposit'
GROUP BY ca.number
`, quoteSchema(s.adminSchema))
}

// PayoutShares must not fail a roster build: any error here downgrades
// to an empty map and every account falls back to the 85% tier.
func (s *Store) PayoutShares(ctx context.Context) (repository.PayoutMap, error) {
	var rows []payoutRow
	err := s.prov.WithAdmin(func(conn *db.DB) error {
		return conn.Gorm.WithContext(ctx).Raw(s.payoutQuery()).Scan(&rows).Error
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("payout share query failed, defaulting all accounts to 85%",
				zap.Error(err))
		}
		return repository.PayoutMap{}, nil
	}

	shares := make(repository.PayoutMap, len(rows))
	for _, row := range rows {
		shares[row.Number] = payoutFromUpsales(row.UpsaleValues)
	}
	return shares, nil
}

func payoutFromUpsales(raw datatypes.JSON) decimal.Decimal {
	fraction := repository.DefaultPayoutFraction
	if len(raw) == 0 {
		return fraction
	}
	var entries []upsaleEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fraction
	}
	for _, entry := range entries {
		if entry.Title != nil && entry.Value != nil {
			return repository.UpsellPayoutFraction
		}
	}
	return fraction
}

func (s *Store) DailyEquitySeries(ctx context.Context, login int64) ([]models.DailyEquityPoint, error) {
	var rows []models.DailyEquityPoint
	err := s.prov.WithMT5(func(conn *db.DB) error {
		return conn.Gorm.WithContext(ctx).Raw(`
SELECT DATE(FROM_UNIXTIME(date_time)) AS date, equity, daily_balance
FROM daily
WHERE login = ? AND date_time IS NOT NULL
ORDER BY date_time ASC
`, login).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) Deals(ctx context.Context, login int64, limit int) ([]models.DealRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.DealRecord
	err := s.prov.WithMT5(func(conn *db.DB) error {
		return conn.Gorm.WithContext(ctx).Raw(`
SELECT Deal AS deal, Login AS login, FROM_UNIXTIME(Time) AS time, Symbol AS symbol,
       Action AS action, Entry AS entry, Volume AS volume, Price AS price, Profit AS profit
FROM deals
WHERE Login = ?
ORDER BY Time DESC
LIMIT ?
`, login, limit).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// traderDealsQuery selects the raw fills fed to position reconstruction.
// Balance and administrative deals carry order id 0 and are excluded.
func (s *Store) traderDealsQuery(filter string) string {
	return fmt.Sprintf(`
SELECT a.login, a.position_id, a.deal AS deal_id, a.` + "`order`" + ` AS order_id,
       CASE WHEN a.action = 0 THEN 'BUY' WHEN a.action = 1 THEN 'SELL' ELSE CAST(a.action AS CHAR) END AS action,
       CASE WHEN a.entry = 0 THEN 'OPEN' WHEN a.entry IN (1, 3) THEN 'CLOSE' ELSE CAST(a.entry AS CHAR) END AS entry,
       a.symbol, a.price, a.volume/10000*a.contract_size AS volume,
       a.profit, a.commission, (a.profit + a.commission) AS net_profit,
       FROM_UNIXTIME(a.time) AS time,
       b.trader_id, c.email, c.first_name, c.last_name
FROM %[1]s.deals a
LEFT JOIN %[2]s.challenge_accounts b ON a.login = b.number
LEFT JOIN %[2]s.traders c ON b.trader_id = c.id
WHERE a.` + "`order`" + ` <> 0 AND %[3]s
ORDER BY a.position_id, a.time
`, quoteSchema(s.mt5Schema), quoteSchema(s.adminSchema), filter)
}

func (s *Store) TraderDealsByLogin(ctx context.Context, login int64) ([]models.TraderDeal, error) {
	return s.traderDeals(ctx, s.traderDealsQuery("a.login = ?"), login)
}

func (s *Store) TraderDealsByEmail(ctx context.Context, email string) ([]models.TraderDeal, error) {
	return s.traderDeals(ctx, s.traderDealsQuery("c.email = ?"), email)
}

func (s *Store) traderDeals(ctx context.Context, query string, arg any) ([]models.TraderDeal, error) {
	var rows []models.TraderDeal
	err := s.prov.WithAdmin(func(conn *db.DB) error {
		return conn.Gorm.WithContext(ctx).Raw(query, arg).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) TestConnections(ctx context.Context) map[string]error {
	status := map[string]error{
		s.mt5Schema:   nil,
		s.adminSchema: nil,
	}
	if conn, err := s.prov.OpenMT5(); err != nil {
		status[s.mt5Schema] = err
	} else {
		status[s.mt5Schema] = db.Ping(conn)
		_ = db.Close(conn)
	}
	if conn, err := s.prov.OpenAdmin(); err != nil {
		status[s.adminSchema] = err
	} else {
		status[s.adminSchema] = db.Ping(conn)
		_ = db.Close(conn)
	}
	return status
}

func quoteSchema(name string) string {
	return "`" + name + "`"
}
