package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/openbooks/ledger/internal/apperrors"
	"github.com/openbooks/ledger/internal/core/domain"
	"github.com/openbooks/ledger/internal/core/ports"
	"github.com/openbooks/ledger/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockPostingSvc struct {
	mock.Mock
}

var _ ports.PostingSvc = (*MockPostingSvc)(nil)

func (m *MockPostingSvc) PostTransaction(ctx context.Context, transactionID string, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, date, description, reference, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingSvc) PostNewTransaction(ctx context.Context, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error) {
	args := m.Called(ctx, date, description, reference, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingSvc) GenerateTransactionID(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}

func (m *MockPostingSvc) ReplaceTransaction(ctx context.Context, transactionID string, date time.Time, description, reference string, entries []domain.EntryInput) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, date, description, reference, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingSvc) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockPostingSvc) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

const sampleOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102

<OFX>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>987654321
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240115
<TRNAMT>500.00
<FITID>20240115-1
<NAME>Client payment
<MEMO>Invoice 42
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240118
<TRNAMT>-82.50
<FITID>20240118-1
<NAME>Office store
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

type StatementServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockReportRepo  *MockReportingRepository
	mockBatchRepo   *MockImportBatchRepository
	mockPosting     *MockPostingSvc
	service         ports.StatementSvc
	ctx             context.Context
}

func (s *StatementServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockReportRepo = new(MockReportingRepository)
	s.mockBatchRepo = new(MockImportBatchRepository)
	s.mockPosting = new(MockPostingSvc)
	s.service = services.NewStatementService(
		s.mockAccountRepo,
		s.mockTxnRepo,
		s.mockReportRepo,
		s.mockBatchRepo,
		s.mockPosting,
		services.OffsetAccounts{Income: "4300", Expense: "5240"},
		testLogger(),
	)
	s.ctx = context.Background()
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}

func (s *StatementServiceTestSuite) cashAccount() *domain.Account {
	return &domain.Account{AccountID: "1110", Name: "Cash and Bank Accounts", AccountType: domain.Asset, IsActive: true}
}

func (s *StatementServiceTestSuite) TestImportStatement_MapsBothDirections() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110").Return(s.cashAccount(), nil).Once()
	s.mockTxnRepo.On("TransactionExists", s.ctx, "OFX_20240115-1").Return(false, nil).Once()
	s.mockTxnRepo.On("TransactionExists", s.ctx, "OFX_20240118-1").Return(false, nil).Once()

	// Positive amount: debit cash, credit the income offset.
	deposit := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	s.mockPosting.On("PostTransaction", s.ctx, "OFX_20240115-1", deposit, "Client payment Invoice 42", "20240115-1",
		mock.MatchedBy(func(entries []domain.EntryInput) bool {
			return len(entries) == 2 &&
				entries[0].AccountID == "1110" && entries[0].Debit.Equal(dec("500.00")) &&
				entries[1].AccountID == "4300" && entries[1].Credit.Equal(dec("500.00"))
		})).Return(&domain.Transaction{TransactionID: "OFX_20240115-1"}, nil).Once()

	// Negative amount: debit the expense offset, credit cash.
	withdrawal := time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC)
	s.mockPosting.On("PostTransaction", s.ctx, "OFX_20240118-1", withdrawal, "Office store", "20240118-1",
		mock.MatchedBy(func(entries []domain.EntryInput) bool {
			return len(entries) == 2 &&
				entries[0].AccountID == "5240" && entries[0].Debit.Equal(dec("82.50")) &&
				entries[1].AccountID == "1110" && entries[1].Credit.Equal(dec("82.50"))
		})).Return(&domain.Transaction{TransactionID: "OFX_20240118-1"}, nil).Once()

	s.mockBatchRepo.On("SaveImportBatch", s.ctx, mock.MatchedBy(func(b domain.ImportBatch) bool {
		return b.SourceAccountRef == "123456789:987654321" &&
			b.LedgerAccountID == "1110" &&
			b.TransactionCount == 2 &&
			b.ContentHash != ""
	})).Return(nil).Once()

	result, err := s.service.ImportStatement(s.ctx, []byte(sampleOFX), "1110")

	s.Require().NoError(err)
	s.Equal(2, result.Imported)
	s.Equal(0, result.Skipped)
	s.NotEmpty(result.BatchID)
	s.mockPosting.AssertExpectations(s.T())
	s.mockBatchRepo.AssertExpectations(s.T())
}

func (s *StatementServiceTestSuite) TestImportStatement_SecondImportSkipsEverything() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110").Return(s.cashAccount(), nil).Once()
	s.mockTxnRepo.On("TransactionExists", s.ctx, "OFX_20240115-1").Return(true, nil).Once()
	s.mockTxnRepo.On("TransactionExists", s.ctx, "OFX_20240118-1").Return(true, nil).Once()
	s.mockBatchRepo.On("SaveImportBatch", s.ctx, mock.AnythingOfType("domain.ImportBatch")).Return(nil).Once()

	result, err := s.service.ImportStatement(s.ctx, []byte(sampleOFX), "1110")

	s.Require().NoError(err)
	s.Equal(0, result.Imported)
	s.Equal(2, result.Skipped)
	s.mockPosting.AssertNotCalled(s.T(), "PostTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *StatementServiceTestSuite) TestImportStatement_UnknownCashAccount() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "9999").Return(nil, apperrors.ErrNotFound).Once()

	result, err := s.service.ImportStatement(s.ctx, []byte(sampleOFX), "9999")

	s.Require().Error(err)
	s.Nil(result)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StatementServiceTestSuite) TestImportStatement_InactiveCashAccount() {
	inactive := s.cashAccount()
	inactive.IsActive = false
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110").Return(inactive, nil).Once()

	result, err := s.service.ImportStatement(s.ctx, []byte(sampleOFX), "1110")

	s.Require().Error(err)
	s.Nil(result)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *StatementServiceTestSuite) TestImportStatement_NoBankAccountBlock() {
	document := []byte("<OFX><BANKMSGSRSV1></BANKMSGSRSV1></OFX>")

	result, err := s.service.ImportStatement(s.ctx, document, "1110")

	s.Require().Error(err)
	s.Nil(result)
	var parseErr *apperrors.ParseError
	s.ErrorAs(err, &parseErr)
	s.mockBatchRepo.AssertNotCalled(s.T(), "SaveImportBatch", mock.Anything, mock.Anything)
}

func (s *StatementServiceTestSuite) TestImportStatement_SkipsUnmappableRecord() {
	document := []byte(`<OFX>
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>987654321
</BANKACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240118
<TRNAMT>not-a-number
<FITID>20240118-9
</STMTTRN>
</BANKTRANLIST>
</OFX>
`)
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110").Return(s.cashAccount(), nil).Once()
	s.mockTxnRepo.On("TransactionExists", s.ctx, "OFX_20240118-9").Return(false, nil).Once()
	s.mockBatchRepo.On("SaveImportBatch", s.ctx, mock.AnythingOfType("domain.ImportBatch")).Return(nil).Once()

	result, err := s.service.ImportStatement(s.ctx, document, "1110")

	s.Require().NoError(err)
	s.Equal(0, result.Imported)
	s.Equal(1, result.Skipped)
}

func (s *StatementServiceTestSuite) TestExportStatement() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	s.mockAccountRepo.On("FindAccountByID", s.ctx, "1110").Return(s.cashAccount(), nil).Once()
	s.mockReportRepo.On("EntriesInRange", s.ctx, "1110", start, end).Return([]domain.EntryWithTransaction{
		{TransactionID: "TXN-20240115-001", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Description: "Client payment", Debit: dec("500.00")},
		{TransactionID: "TXN-20240118-001", Date: time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC), Description: "Office store", Credit: dec("82.50")},
	}, nil).Once()

	document, err := s.service.ExportStatement(s.ctx, "1110", start, end)

	s.Require().NoError(err)
	content := string(document)
	s.Contains(content, "OFXHEADER:100")
	s.Contains(content, "<ACCTID>1110</ACCTID>")
	s.Contains(content, "<FITID>TXN-20240115-001</FITID>")
	s.Contains(content, "<TRNAMT>-500.00</TRNAMT>")
	s.Contains(content, "<TRNAMT>82.50</TRNAMT>")
}

func (s *StatementServiceTestSuite) TestExportStatement_UnknownAccount() {
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "9999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ExportStatement(s.ctx, "9999", time.Now(), time.Now())

	s.ErrorIs(err, apperrors.ErrNotFound)
}
