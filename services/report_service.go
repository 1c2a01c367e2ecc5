package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"frontdesk-backend/models"
)

// ReportService sums checkout revenue over calendar periods.
type ReportService struct {
	DB       *gorm.DB
	Location *time.Location
	Now      func() time.Time
}

func NewReportService(db *gorm.DB, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{DB: db, Location: loc, Now: time.Now}
}

// PeriodStarts returns the start of the day, week (Sunday) and month that
// contain ref, in loc.
func PeriodStarts(ref time.Time, loc *time.Location) (day, week, month time.Time) {
	t := ref.In(loc)
	day = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	week = day.AddDate(0, 0, -int(day.Weekday()))
	month = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return day, week, month
}

// Revenue reports totals for the periods containing the current instant.
func (s *ReportService) Revenue(ctx context.Context) (models.RevenueReport, error) {
	return s.RevenueAt(ctx, s.Now())
}

func (s *ReportService) RevenueAt(ctx context.Context, ref time.Time) (models.RevenueReport, error) {
	day, week, month := PeriodStarts(ref, s.Location)
	db := s.DB.WithContext(ctx)

	var (
		report models.RevenueReport
		err    error
	)
	if report.Daily, err = sumSince(db, day); err != nil {
		return report, err
	}
	if report.Weekly, err = sumSince(db, week); err != nil {
		return report, err
	}
	if report.Monthly, err = sumSince(db, month); err != nil {
		return report, err
	}
	return report, nil
}

func sumSince(db *gorm.DB, from time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&models.Transaction{}).
		Select("SUM(total)").
		Where("check_out_time >= ?", from.UTC()).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, storageError("failed to sum transactions", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
