package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/centraldesk/treasury_transfer_app/internal/apperrors"
	"github.com/centraldesk/treasury_transfer_app/internal/core/domain"
	portsrepo "github.com/centraldesk/treasury_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/centraldesk/treasury_transfer_app/internal/core/ports/services"
	"github.com/centraldesk/treasury_transfer_app/internal/dto"
	"github.com/centraldesk/treasury_transfer_app/internal/middleware"
)

var (
	ErrEntryUnbalanced = errors.New("entry lines do not balance to zero")
	ErrEntryMinLines   = errors.New("entry must have at least two lines")
)

// ledgerService is the accounting engine behind the capability interface:
// journal queries, posted balance aggregation, entry creation and posting,
// plus the administrative surface for journals and accounts.
type ledgerService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	entryRepo   portsrepo.EntryRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(jr portsrepo.JournalRepositoryFacade, ar portsrepo.AccountRepositoryFacade, er portsrepo.EntryRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		journalRepo: jr,
		accountRepo: ar,
		entryRepo:   er,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// QueryJournals retrieves journals matching the filter. The repository
// orders by journal id ascending, so "first match" is deterministic.
func (s *ledgerService) QueryJournals(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.Journal, error) {
	if filter.CompanyID == "" {
		return nil, fmt.Errorf("%w: journal filter requires a company", apperrors.ErrValidation)
	}
	return s.journalRepo.FindJournals(ctx, filter)
}

// QueryPostedBalance sums posted line balances on an account as of a date.
// Draft entries never feed the figure.
func (s *ledgerService) QueryPostedBalance(ctx context.Context, accountID, companyID string, asOf time.Time) (decimal.Decimal, error) {
	balance, err := s.entryRepo.SumPostedBalance(ctx, accountID, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum posted balance", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to compute posted balance: %w", err)
	}
	return balance, nil
}

// validateEntryLines checks the lines of a prospective entry: at least two
// lines, non-negative legs, debits equal to credits.
func (s *ledgerService) validateEntryLines(lines []domain.EntryLine) error {
	if len(lines) < 2 {
		return ErrEntryMinLines
	}

	debitsSum := decimal.Zero
	creditsSum := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line amounts must not be negative", apperrors.ErrValidation)
		}
		debitsSum = debitsSum.Add(line.Debit)
		creditsSum = creditsSum.Add(line.Credit)
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrEntryUnbalanced, debitsSum.String(), creditsSum.String())
	}
	return nil
}

// CreateEntry creates a draft entry with its lines and returns its id.
func (s *ledgerService) CreateEntry(ctx context.Context, entry domain.Entry, creatorUserID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if entry.CompanyID == "" || entry.JournalID == "" {
		return "", fmt.Errorf("%w: entry requires a company and a journal", apperrors.ErrValidation)
	}
	if err := s.validateEntryLines(entry.Lines); err != nil {
		return "", err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, entry.JournalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: journal %s not found", apperrors.ErrValidation, entry.JournalID)
		}
		return "", fmt.Errorf("failed to check entry journal: %w", err)
	}
	if journal.CompanyID != entry.CompanyID {
		return "", fmt.Errorf("%w: journal belongs to another company", apperrors.ErrValidation)
	}

	now := time.Now()
	entry.EntryID = uuid.NewString()
	entry.Status = domain.EntryDraft
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	for i := range entry.Lines {
		entry.Lines[i].LineID = uuid.NewString()
		entry.Lines[i].EntryID = entry.EntryID
		entry.Lines[i].CompanyID = entry.CompanyID
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("journal_id", entry.JournalID))
		return "", fmt.Errorf("failed to create entry: %w", err)
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("journal_id", entry.JournalID))
	return entry.EntryID, nil
}

// PostEntry commits a draft entry.
func (s *ledgerService) PostEntry(ctx context.Context, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.entryRepo.MarkEntryPosted(ctx, entryID, userID, time.Now()); err != nil {
		logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	logger.Info("Entry posted", slog.String("entry_id", entryID))
	return nil
}

// CreateJournal creates a journal for a company. Admin only. Any referenced
// main-account candidates must exist and belong to the company.
func (s *ledgerService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	for _, accountID := range []*string{req.DefaultAccountID, req.PaymentDebitAccountID, req.PaymentCreditAccountID} {
		if accountID == nil {
			continue
		}
		account, err := s.accountRepo.FindAccountByID(ctx, *accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, *accountID)
			}
			return nil, fmt.Errorf("failed to check journal account: %w", err)
		}
		if account.CompanyID != companyID {
			return nil, fmt.Errorf("%w: account %s belongs to another company", apperrors.ErrValidation, *accountID)
		}
	}

	now := time.Now()
	journal := domain.Journal{
		JournalID:              uuid.NewString(),
		CompanyID:              companyID,
		Name:                   req.Name,
		Kind:                   req.Kind,
		OperatingUnitID:        req.OperatingUnitID,
		DefaultAccountID:       req.DefaultAccountID,
		PaymentDebitAccountID:  req.PaymentDebitAccountID,
		PaymentCreditAccountID: req.PaymentCreditAccountID,
		IsActive:               true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("kind", string(journal.Kind)))
	return &journal, nil
}

// ListJournals retrieves all journals of a company.
func (s *ledgerService) ListJournals(ctx context.Context, companyID string, userID string) ([]domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.journalRepo.FindJournals(ctx, portsrepo.JournalFilter{CompanyID: companyID})
}

// CreateAccount creates an account in a company's chart of accounts. Admin only.
func (s *ledgerService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: companyID,
		Code:      req.Code,
		Name:      req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// ListAccounts retrieves the chart of accounts of a company.
func (s *ledgerService) ListAccounts(ctx context.Context, companyID string, userID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccountsByCompany(ctx, companyID)
}
