package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

func (s *RepositorySuite) TestInsertTransactions() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	block := newBlock(1, "a", now,
		model.Transaction{ID: "r1", Timestamp: now, Amount: 500, Details: model.Reward{Account: "4111********1234"}},
		model.Transaction{ID: "t1", Timestamp: now, Amount: 20, Details: model.Transfer{Sender: "4111********1234", Recipient: "5500********0004"}},
	)

	s.metrics.EXPECT().Observe("insert_transactions", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactions(s.testCtx, model.ConfirmedTransactions([]model.Block{block})))
	s.Equal(uint64(2), s.countRows("ledger_transactions"))

	var accounts []string
	s.Require().NoError(s.repo.conn.QueryRow(s.testCtx, `
SELECT accounts
FROM ledger_transactions FINAL
WHERE tx_id = ?`, "t1").Scan(&accounts))
	s.Equal([]string{"4111********1234", "5500********0004"}, accounts)
}
