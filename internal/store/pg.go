package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/store/schema"
)

// uniqueViolationCode is the Postgres SQLSTATE for unique_violation
const uniqueViolationCode = "23505"

type pgStore struct {
	db *gorm.DB
}

type pgUnitOfWork struct {
	tx *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// primary returns a session that bypasses the read replicas
func (s *pgStore) primary(ctx context.Context) *gorm.DB {
	return s.db.Clauses(dbresolver.Write).WithContext(ctx)
}

// listing returns a session for list queries: a replica unless ctx is pinned to the primary
func (s *pgStore) listing(ctx context.Context) *gorm.DB {
	if readsPrimary(ctx) {
		return s.primary(ctx)
	}
	return s.db.WithContext(ctx)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, defaults from NormalizeConnectionPoolSettings are used.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// ConfigureReadReplicas routes list queries to the given replica DSNs.
// Transactions, writes and the reads that decide or cache state always go to the primary.
func ConfigureReadReplicas(db *gorm.DB, replicaDSNs []string) error {
	if len(replicaDSNs) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(replicaDSNs))
	for _, dsn := range replicaDSNs {
		replicas = append(replicas, postgres.Open(dsn))
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replicas: %w", err)
	}

	return nil
}

// Migrate creates or updates the tables, indexes and constraints used by the store
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(schema.Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Ping verifies the database is reachable
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// GetOwnership retrieves the ownership record of an asset from the primary
func (s *pgStore) GetOwnership(ctx context.Context, assetID string) (*domain.OwnershipRecord, error) {
	var row schema.OwnershipRecord
	err := s.primary(ctx).Where("asset_id = ?", assetID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ownership: %w", err)
	}
	return ownershipFromSchema(&row), nil
}

// TouchLastActivity bumps last_activity on the ownership record of an asset
func (s *pgStore) TouchLastActivity(ctx context.Context, assetID string, at time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.OwnershipRecord{}).
		Where("asset_id = ? AND last_activity < ?", assetID, at).
		Updates(map[string]any{
			"last_activity": at,
			"updated_at":    gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to touch last activity: %w", err)
	}
	return nil
}

// ListUnclaimedWithPendingClaims returns assets unclaimed since before the cutoff that have a
// pending claim, oldest first. Always read from the primary.
func (s *pgStore) ListUnclaimedWithPendingClaims(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	var assetIDs []string

	pending := s.db.Model(&schema.Claim{}).
		Select("1").
		Where("claims.asset_id = ownership_records.asset_id AND claims.status = ?", schema.ClaimStatusPending)

	query := s.primary(ctx).
		Model(&schema.OwnershipRecord{}).
		Where("ownership_records.status = ? AND ownership_records.unclaimed_since < ?", schema.OwnershipStatusUnclaimed, cutoff).
		Where("EXISTS (?)", pending).
		Order("unclaimed_since ASC").
		Order("asset_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Pluck("asset_id", &assetIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to list auto-transfer candidates: %w", err)
	}

	return assetIDs, nil
}

// GetClaim retrieves a claim on an asset from the primary
func (s *pgStore) GetClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error) {
	return getClaim(ctx, s.primary(ctx), assetID, claimID)
}

// ListClaims lists claims ordered by submission time
func (s *pgStore) ListClaims(ctx context.Context, filter ClaimFilter) ([]domain.Claim, error) {
	query := s.listing(ctx).Model(&schema.Claim{})
	if filter.AssetID != nil {
		query = query.Where("asset_id = ?", *filter.AssetID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var rows []schema.Claim
	if err := query.Order("submitted_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}

	claims := make([]domain.Claim, 0, len(rows))
	for i := range rows {
		claims = append(claims, claimFromSchema(&rows[i]))
	}
	return claims, nil
}

// CreateClaim inserts a new claim
func (s *pgStore) CreateClaim(ctx context.Context, claim *domain.Claim) error {
	row := claimToSchema(claim)
	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewError(domain.KindDuplicatePendingClaim, "pending claim already exists for user")
		}
		return fmt.Errorf("failed to create claim: %w", err)
	}
	return nil
}

// AppendContribution inserts a contribution
func (s *pgStore) AppendContribution(ctx context.Context, contribution *domain.Contribution) error {
	row := contributionToSchema(contribution)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append contribution: %w", err)
	}
	return nil
}

// ListContributions lists contributions in insertion order
func (s *pgStore) ListContributions(ctx context.Context, filter ContributionFilter) ([]domain.Contribution, error) {
	query := s.listing(ctx).Where("asset_id = ?", filter.AssetID)
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var rows []schema.Contribution
	if err := query.Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}

	contributions := make([]domain.Contribution, 0, len(rows))
	for i := range rows {
		contributions = append(contributions, contributionFromSchema(&rows[i]))
	}
	return contributions, nil
}

// SumContributionWeights returns the contribution score of a user on an asset from the primary
func (s *pgStore) SumContributionWeights(ctx context.Context, assetID, userID string) (int64, error) {
	var total int64
	err := s.primary(ctx).
		Model(&schema.Contribution{}).
		Where("asset_id = ? AND user_id = ?", assetID, userID).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum contribution weights: %w", err)
	}
	return total, nil
}

// RunInTx executes fn inside a database transaction
func (s *pgStore) RunInTx(ctx context.Context, fn func(uow UnitOfWork) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgUnitOfWork{tx: tx})
	})
}

// GetOwnershipForUpdate reads the ownership record with SELECT ... FOR UPDATE
func (u *pgUnitOfWork) GetOwnershipForUpdate(ctx context.Context, assetID string) (*domain.OwnershipRecord, error) {
	var row schema.OwnershipRecord
	err := u.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("asset_id = ?", assetID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock ownership: %w", err)
	}
	return ownershipFromSchema(&row), nil
}

// InsertOwnership creates the ownership record of an asset
func (u *pgUnitOfWork) InsertOwnership(ctx context.Context, record *domain.OwnershipRecord) error {
	row := ownershipToSchema(record)
	err := u.tx.WithContext(ctx).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewError(domain.KindAlreadyOwned, "ownership record created concurrently")
		}
		return fmt.Errorf("failed to insert ownership: %w", err)
	}
	return nil
}

// UpdateOwnership overwrites the ownership record of an asset
func (u *pgUnitOfWork) UpdateOwnership(ctx context.Context, record *domain.OwnershipRecord) error {
	row := ownershipToSchema(record)
	result := u.tx.WithContext(ctx).
		Model(&schema.OwnershipRecord{}).
		Where("asset_id = ?", record.AssetID).
		Updates(map[string]any{
			"owner_id":        row.OwnerID,
			"owner_name":      row.OwnerName,
			"owner_email":     row.OwnerEmail,
			"status":          row.Status,
			"claimed_at":      row.ClaimedAt,
			"last_activity":   row.LastActivity,
			"unclaimed_since": row.UnclaimedSince,
			"previous_owners": row.PreviousOwners,
			"updated_at":      gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ownership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ownership record not found for asset: %s", record.AssetID)
	}
	return nil
}

// GetClaim reads a claim inside the transaction
func (u *pgUnitOfWork) GetClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error) {
	return getClaim(ctx, u.tx.Clauses(clause.Locking{Strength: "UPDATE"}), assetID, claimID)
}

// ListPendingClaims lists the pending claims of an asset
func (u *pgUnitOfWork) ListPendingClaims(ctx context.Context, assetID string) ([]domain.Claim, error) {
	var rows []schema.Claim
	err := u.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("asset_id = ? AND status = ?", assetID, schema.ClaimStatusPending).
		Order("submitted_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending claims: %w", err)
	}

	claims := make([]domain.Claim, 0, len(rows))
	for i := range rows {
		claims = append(claims, claimFromSchema(&rows[i]))
	}
	return claims, nil
}

// UpdateClaim overwrites the resolution fields of a claim
func (u *pgUnitOfWork) UpdateClaim(ctx context.Context, claim *domain.Claim) error {
	result := u.tx.WithContext(ctx).
		Model(&schema.Claim{}).
		Where("id = ? AND asset_id = ?", claim.ID, claim.AssetID).
		Updates(map[string]any{
			"status":        schema.ClaimStatus(claim.Status),
			"resolved_at":   claim.ResolvedAt,
			"resolved_by":   claim.ResolvedBy,
			"denial_reason": claim.DenialReason,
			"updated_at":    gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update claim: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("claim not found: %s", claim.ID)
	}
	return nil
}

func getClaim(ctx context.Context, db *gorm.DB, assetID, claimID string) (*domain.Claim, error) {
	var row schema.Claim
	err := db.WithContext(ctx).
		Where("id = ? AND asset_id = ?", claimID, assetID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	claim := claimFromSchema(&row)
	return &claim, nil
}
