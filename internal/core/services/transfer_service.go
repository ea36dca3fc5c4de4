package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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
	ErrTransferValidated = errors.New("transfer is already validated")
	ErrNoSourceJournal   = errors.New("no eligible source journal")
)

// transferService orchestrates transfer requests: defaulting from current
// ledger state, variance handling, and the validate-and-post transition.
type transferService struct {
	BaseService
	transferRepo portsrepo.TransferRepositoryFacade
	companyRepo  portsrepo.CompanyReader
	ledger       portssvc.LedgerSvcFacade
	userSvc      portssvc.UserReaderSvc
}

// NewTransferService creates a new TransferService.
func NewTransferService(tr portsrepo.TransferRepositoryFacade, cr portsrepo.CompanyReader, ledger portssvc.LedgerSvcFacade, userSvc portssvc.UserReaderSvc, authorizer portssvc.CompanyAuthorizerSvc) portssvc.TransferSvcFacade {
	return &transferService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		transferRepo: tr,
		companyRepo:  cr,
		ledger:       ledger,
		userSvc:      userSvc,
	}
}

// Ensure transferService implements the portssvc.TransferSvcFacade interface
var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// today returns the current accounting date (midnight UTC).
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// selectSourceJournal picks the journal the transfer draws from: cash/bank
// journals of the company, restricted to the acting user's operating units
// when the user has any. Candidates come back ordered by journal id, so the
// pick is deterministic.
func (s *transferService) selectSourceJournal(ctx context.Context, companyID string, user *domain.User) (*domain.Journal, error) {
	filter := portsrepo.JournalFilter{
		CompanyID:        companyID,
		Kinds:            []domain.JournalKind{domain.JournalCash, domain.JournalBank},
		OperatingUnitIDs: user.OperatingUnitIDs,
	}

	journals, err := s.ledger.QueryJournals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query source journals: %w", err)
	}
	if len(journals) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConfiguration, ErrNoSourceJournal)
	}
	return &journals[0], nil
}

// InitializeTransfer creates a draft transfer with defaults computed from
// the ledger's current state.
func (s *transferService) InitializeTransfer(ctx context.Context, companyID string, userID string) (*domain.TransferRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	journal, err := s.selectSourceJournal(ctx, companyID, user)
	if err != nil {
		return nil, err
	}

	date := today()

	// System amount is the posted balance of the journal's main account as of
	// the transfer date. Journals with no resolvable main account default to
	// zero; validation will reject them later.
	systemAmount := decimal.Zero
	if accountID := journal.MainAccountID(); accountID != nil {
		systemAmount, err = s.ledger.QueryPostedBalance(ctx, *accountID, companyID, date)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	transfer := domain.TransferRequest{
		TransferID:      uuid.NewString(),
		CompanyID:       companyID,
		Date:            date,
		SourceJournalID: journal.JournalID,
		SystemAmount:    systemAmount,
		InputAmount:     decimal.Zero,
		Status:          domain.TransferDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transferRepo.SaveTransfer(ctx, transfer); err != nil {
		logger.Error("Failed to save transfer", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	logger.Info("Transfer initialized",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("source_journal_id", journal.JournalID),
		slog.String("system_amount", systemAmount.String()))
	return &transfer, nil
}

// GetTransferByID retrieves a company's transfer request.
func (s *transferService) GetTransferByID(ctx context.Context, companyID, transferID, userID string) (*domain.TransferRequest, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findCompanyTransfer(ctx, companyID, transferID)
}

// ListTransfers retrieves a company's transfer requests, newest first.
func (s *transferService) ListTransfers(ctx context.Context, companyID string, limit, offset int, userID string) ([]domain.TransferRequest, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.transferRepo.ListTransfersByCompany(ctx, companyID, limit, offset)
}

// findCompanyTransfer loads a transfer and hides records of other companies.
func (s *transferService) findCompanyTransfer(ctx context.Context, companyID, transferID string) (*domain.TransferRequest, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return transfer, nil
}

// UpdateTransfer updates the mutable fields of a draft transfer. The source
// journal and system amount are never accepted from the caller.
func (s *transferService) UpdateTransfer(ctx context.Context, companyID, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.TransferRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	transfer, err := s.findCompanyTransfer(ctx, companyID, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status == domain.TransferValidated {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferValidated)
	}

	if req.Date != nil {
		transfer.Date = req.Date.UTC().Truncate(24 * time.Hour)
	}
	if req.InputAmount != nil {
		transfer.InputAmount = *req.InputAmount
	}
	if req.Reason != nil {
		transfer.Reason = *req.Reason
	}
	transfer.LastUpdatedAt = time.Now()
	transfer.LastUpdatedBy = userID

	if err := s.transferRepo.UpdateTransfer(ctx, *transfer); err != nil {
		logger.Error("Failed to update transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		return nil, fmt.Errorf("failed to update transfer: %w", err)
	}

	return transfer, nil
}

// checkPreconditions runs the pre-validation pass. The checks short-circuit
// in a fixed order so the user always sees the most actionable message.
func (s *transferService) checkPreconditions(transfer *domain.TransferRequest, company *domain.Company) error {
	if transfer.SourceJournalID == "" {
		return fmt.Errorf("%w: source journal is not set", apperrors.ErrValidation)
	}
	if company.CentralJournalID == nil || *company.CentralJournalID == "" {
		return fmt.Errorf("%w: central journal not configured", apperrors.ErrConfiguration)
	}
	if transfer.HasVariance() && strings.TrimSpace(transfer.Reason) == "" {
		return fmt.Errorf("%w: variance exists, reason required", apperrors.ErrValidation)
	}
	if company.TransitAccountID == nil || *company.TransitAccountID == "" {
		return fmt.Errorf("%w: transit account not configured", apperrors.ErrConfiguration)
	}
	return nil
}

// ValidateTransfer runs the draft -> validated transition: precondition
// checks, a two-line entry on the central journal (debit transit account,
// credit source journal's main account), immediate posting, then the status
// flip. Every failure path leaves the record in DRAFT.
func (s *transferService) ValidateTransfer(ctx context.Context, companyID, transferID string, userID string) (*domain.TransferRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	transfer, err := s.findCompanyTransfer(ctx, companyID, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.Status == domain.TransferValidated {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferValidated)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	if err := s.checkPreconditions(transfer, company); err != nil {
		return nil, err
	}

	amount := transfer.InputAmount
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	journals, err := s.ledger.QueryJournals(ctx, portsrepo.JournalFilter{
		CompanyID:  companyID,
		JournalIDs: []string{transfer.SourceJournalID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load source journal: %w", err)
	}
	if len(journals) == 0 {
		return nil, fmt.Errorf("%w: source journal %s not found", apperrors.ErrValidation, transfer.SourceJournalID)
	}
	sourceJournal := journals[0]

	creditAccountID := sourceJournal.MainAccountID()
	if creditAccountID == nil {
		return nil, fmt.Errorf("%w: source journal has no resolvable main account", apperrors.ErrValidation)
	}
	debitAccountID := *company.TransitAccountID

	entry := domain.Entry{
		CompanyID: companyID,
		JournalID: *company.CentralJournalID,
		EntryDate: transfer.Date,
		Reference: fmt.Sprintf("Transfer to central treasury #%s", transfer.TransferID),
		Lines: []domain.EntryLine{
			{
				AccountID: debitAccountID,
				Label:     fmt.Sprintf("Transfer from %s", sourceJournal.Name),
				Debit:     amount,
				Credit:    decimal.Zero,
			},
			{
				AccountID: *creditAccountID,
				Label:     fmt.Sprintf("Outgoing from %s", sourceJournal.Name),
				Debit:     decimal.Zero,
				Credit:    amount,
			},
		},
	}

	entryID, err := s.ledger.CreateEntry(ctx, entry, userID)
	if err != nil {
		return nil, err
	}
	// Posting is not optional or deferred: a created-but-unposted entry is
	// not a valid terminal state of this transition.
	if err := s.ledger.PostEntry(ctx, entryID, userID); err != nil {
		return nil, err
	}

	transfer.Status = domain.TransferValidated
	transfer.EntryID = &entryID
	transfer.LastUpdatedAt = time.Now()
	transfer.LastUpdatedBy = userID

	if err := s.transferRepo.UpdateTransfer(ctx, *transfer); err != nil {
		logger.Error("Failed to persist validated transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to persist validated transfer: %w", err)
	}

	logger.Info("Transfer validated",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("entry_id", entryID),
		slog.String("amount", amount.String()),
		slog.String("variance", transfer.Variance().String()))
	return transfer, nil
}
