package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

func (s *RepositorySuite) TestInsertBlocks() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	blocks := []model.Block{
		newBlock(0, "a", now),
		newBlock(1, "b", now.Add(time.Second)),
	}

	s.metrics.EXPECT().Observe("insert_blocks", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, blocks))
	s.Equal(uint64(len(blocks)), s.countRows("ledger_blocks"))
}

func (s *RepositorySuite) TestInsertBlocksIsIdempotentPerIndex() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	block := newBlock(3, "c", now)

	s.metrics.EXPECT().Observe("insert_blocks", gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, []model.Block{block}))
	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, []model.Block{block}))
	s.Equal(uint64(1), s.countRows("ledger_blocks"))
}

func (s *RepositorySuite) TestMaxBlockIndex() {
	now := time.Now().UTC().Truncate(time.Millisecond)

	s.metrics.EXPECT().Observe("max_block_index", gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("insert_blocks", gomock.Nil(), gomock.Any()).Times(1)

	_, ok, err := s.repo.MaxBlockIndex(s.testCtx)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, []model.Block{
		newBlock(0, "a", now),
		newBlock(5, "e", now),
		newBlock(2, "b", now),
	}))

	got, ok, err := s.repo.MaxBlockIndex(s.testCtx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(uint64(5), got)
}

func (s *RepositorySuite) TestMissingBlockIndexes() {
	now := time.Now().UTC().Truncate(time.Millisecond)

	s.metrics.EXPECT().Observe("insert_blocks", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("missing_block_indexes", gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, []model.Block{
		newBlock(0, "a", now),
		newBlock(2, "b", now),
		newBlock(5, "e", now),
	}))

	got, err := s.repo.MissingBlockIndexes(s.testCtx, 5)
	s.Require().NoError(err)
	s.Equal([]uint64{1, 3, 4}, got)

	got, err = s.repo.MissingBlockIndexes(s.testCtx, 0)
	s.Require().NoError(err)
	s.Empty(got)
}
