package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/brigadly/backend/internal/models"
	"github.com/brigadly/backend/internal/utils"
)

/*
   In-memory fakes for the repository interfaces. They reproduce the atomic
   semantics of the SQL layer (optimistic versions, slot accounting, conflict
   sentinels) so the services can be exercised without a database.
*/

// ---------------------------------------------------------------- companies

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[uuid.UUID]*models.Company{}}
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *models.Company) error {
	c.RowVersion = 1
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) UpdateIfVersion(ctx context.Context, c *models.Company, expectedVersion int64) (pgconn.CommandTag, error) {
	cur := f.companies[c.ID]
	if cur == nil || cur.RowVersion != expectedVersion {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	c.RowVersion = expectedVersion + 1
	f.companies[c.ID] = c
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeCompanyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Company) error) error {
	cur := f.companies[id]
	if cur == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(cur); err != nil {
		return err
	}
	cur.RowVersion++
	return nil
}

// ---------------------------------------------------------------- workers

type scoreEvent struct {
	workerID         uuid.UUID
	activityDelta    int
	reliabilityDelta int
	eventType        string
}

type fakeWorkerRepo struct {
	workers map[uuid.UUID]*models.WorkerProfile
	events  []scoreEvent
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: map[uuid.UUID]*models.WorkerProfile{}}
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w *models.WorkerProfile) error {
	w.RowVersion = 1
	f.workers[w.ID] = w
	return nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkerProfile, error) {
	return f.workers[id], nil
}

func (f *fakeWorkerRepo) GetByEmail(ctx context.Context, email string) (*models.WorkerProfile, error) {
	for _, w := range f.workers {
		if w.Email == email {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkerRepo) UpdateIfVersion(ctx context.Context, w *models.WorkerProfile, expectedVersion int64) (pgconn.CommandTag, error) {
	cur := f.workers[w.ID]
	if cur == nil || cur.RowVersion != expectedVersion {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	w.RowVersion = expectedVersion + 1
	f.workers[w.ID] = w
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeWorkerRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.WorkerProfile) error) error {
	cur := f.workers[id]
	if cur == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(cur); err != nil {
		return err
	}
	cur.RowVersion++
	return nil
}

func (f *fakeWorkerRepo) AdjustScoresAtomic(ctx context.Context, workerID uuid.UUID, activityDelta, reliabilityDelta int, eventType string) error {
	w := f.workers[workerID]
	if w == nil {
		return pgx.ErrNoRows
	}
	w.ActivityScore = clampTestScore(w.ActivityScore + activityDelta)
	w.ReliabilityScore = clampTestScore(w.ReliabilityScore + reliabilityDelta)
	f.events = append(f.events, scoreEvent{workerID, activityDelta, reliabilityDelta, eventType})
	return nil
}

func clampTestScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ---------------------------------------------------------------- shifts

type fakeShiftRepo struct {
	shifts    map[uuid.UUID]*models.Shift
	companies *fakeCompanyRepo
}

func newFakeShiftRepo(companies *fakeCompanyRepo) *fakeShiftRepo {
	return &fakeShiftRepo{shifts: map[uuid.UUID]*models.Shift{}, companies: companies}
}

func (f *fakeShiftRepo) Create(ctx context.Context, s *models.Shift) error {
	s.RowVersion = 1
	f.shifts[s.ID] = s
	return nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	return f.shifts[id], nil
}

func (f *fakeShiftRepo) ListOpenInRegion(ctx context.Context, region string, from, to time.Time) ([]*models.Shift, error) {
	var out []*models.Shift
	for _, s := range f.shifts {
		company := f.companies.companies[s.CompanyID]
		if company == nil || !company.Approved || company.Region != region {
			continue
		}
		if s.Status != models.ShiftStatusOpen {
			continue
		}
		if s.StartAt.Before(from) || s.StartAt.After(to) {
			continue
		}
		out = append(out, s)
	}
	sortShiftsByStart(out)
	return out, nil
}

func (f *fakeShiftRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Shift, error) {
	var out []*models.Shift
	for _, s := range f.shifts {
		if s.CompanyID != companyID || s.StartAt.Before(from) || s.StartAt.After(to) {
			continue
		}
		out = append(out, s)
	}
	sortShiftsByStart(out)
	return out, nil
}

func (f *fakeShiftRepo) ListOpenByCompany(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Shift, error) {
	all, _ := f.ListByCompany(ctx, companyID, from, to)
	var out []*models.Shift
	for _, s := range all {
		if s.Status == models.ShiftStatusOpen {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) UpdateIfVersion(ctx context.Context, s *models.Shift, expectedVersion int64) (pgconn.CommandTag, error) {
	cur := f.shifts[s.ID]
	if cur == nil || cur.RowVersion != expectedVersion {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	s.RowVersion = expectedVersion + 1
	f.shifts[s.ID] = s
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeShiftRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Shift) error) error {
	cur := f.shifts[id]
	if cur == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(cur); err != nil {
		return err
	}
	cur.RowVersion++
	return nil
}

func (f *fakeShiftRepo) CloseStartedShifts(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, s := range f.shifts {
		if (s.Status == models.ShiftStatusOpen || s.Status == models.ShiftStatusFull) && !s.StartAt.After(now) {
			s.Status = models.ShiftStatusClosed
			s.RowVersion++
			n++
		}
	}
	return n, nil
}

func sortShiftsByStart(shifts []*models.Shift) {
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].StartAt.Before(shifts[j].StartAt) })
}

// ---------------------------------------------------------------- applications

type fakeApplicationRepo struct {
	apps   map[uuid.UUID]*models.Application
	shifts *fakeShiftRepo
}

func newFakeApplicationRepo(shifts *fakeShiftRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[uuid.UUID]*models.Application{}, shifts: shifts}
}

func (f *fakeApplicationRepo) CreateIfNotExists(ctx context.Context, app *models.Application) (bool, error) {
	for _, a := range f.apps {
		if a.ShiftID == app.ShiftID && a.WorkerID == app.WorkerID {
			return false, nil
		}
	}
	app.RowVersion = 1
	f.apps[app.ID] = app
	return true, nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return f.apps[id], nil
}

func (f *fakeApplicationRepo) GetByShiftAndWorker(ctx context.Context, shiftID, workerID uuid.UUID) (*models.Application, error) {
	for _, a := range f.apps {
		if a.ShiftID == shiftID && a.WorkerID == workerID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationRepo) ListByWorker(ctx context.Context, workerID uuid.UUID, statuses []models.ApplicationStatusType) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range f.apps {
		if a.WorkerID == workerID && statusMatches(a.Status, statuses) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByShift(ctx context.Context, shiftID uuid.UUID, statuses []models.ApplicationStatusType) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range f.apps {
		if a.ShiftID == shiftID && statusMatches(a.Status, statuses) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	return out, nil
}

func statusMatches(st models.ApplicationStatusType, statuses []models.ApplicationStatusType) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (f *fakeApplicationRepo) ExistsConfirmedOverlap(ctx context.Context, workerID uuid.UUID, start, end time.Time, excludeShiftID uuid.UUID) (bool, error) {
	for _, a := range f.apps {
		if a.WorkerID != workerID || a.Status != models.ApplicationStatusConfirmed || a.ShiftID == excludeShiftID {
			continue
		}
		s := f.shifts.shifts[a.ShiftID]
		if s == nil {
			continue
		}
		if s.StartAt.Before(end) && s.EndAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) ConfirmAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.Application, *models.Shift, error) {
	app := f.apps[appID]
	if app == nil {
		return nil, nil, pgx.ErrNoRows
	}
	if app.RowVersion != expectedVersion {
		return nil, nil, utils.ErrRowVersionConflict
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, nil, utils.ErrWrongStatus
	}
	sh := f.shifts.shifts[app.ShiftID]
	if sh == nil {
		return nil, nil, pgx.ErrNoRows
	}
	if sh.Status != models.ShiftStatusOpen {
		return nil, nil, utils.ErrShiftNotAccepting
	}
	app.Status = models.ApplicationStatusConfirmed
	app.RowVersion++
	sh.ConfirmedCount++
	if sh.ConfirmedCount >= sh.NeededWorkers {
		sh.Status = models.ShiftStatusFull
	}
	sh.RowVersion++
	return app, sh, nil
}

func (f *fakeApplicationRepo) RejectAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.Application, error) {
	app := f.apps[appID]
	if app == nil {
		return nil, pgx.ErrNoRows
	}
	if app.RowVersion != expectedVersion {
		return nil, utils.ErrRowVersionConflict
	}
	if app.Status == models.ApplicationStatusConfirmed {
		return nil, utils.ErrConfirmedCannotReject
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, utils.ErrWrongStatus
	}
	app.Status = models.ApplicationStatusRejected
	app.RowVersion++
	return app, nil
}

func (f *fakeApplicationRepo) CancelAtomic(
	ctx context.Context,
	appID uuid.UUID,
	expectedVersion int64,
	newStatus models.ApplicationStatusType,
	canceledBy models.CancelPartyType,
	canceledAt time.Time,
	compensation *float64,
) (*models.Application, error) {
	app := f.apps[appID]
	if app == nil {
		return nil, pgx.ErrNoRows
	}
	if app.RowVersion != expectedVersion {
		return nil, utils.ErrRowVersionConflict
	}
	if app.Status.IsTerminal() {
		return nil, utils.ErrWrongStatus
	}
	wasConfirmed := app.Status == models.ApplicationStatusConfirmed
	app.Status = newStatus
	app.CanceledBy = &canceledBy
	app.CanceledAt = &canceledAt
	app.CompensationAmount = compensation
	app.RowVersion++
	if wasConfirmed {
		if sh := f.shifts.shifts[app.ShiftID]; sh != nil {
			if sh.ConfirmedCount > 0 {
				sh.ConfirmedCount--
			}
			if sh.Status == models.ShiftStatusFull {
				sh.Status = models.ShiftStatusOpen
			}
			sh.RowVersion++
		}
	}
	return app, nil
}

func (f *fakeApplicationRepo) ConfirmWorkedAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64, at time.Time, rating *int16) (*models.Application, error) {
	app := f.apps[appID]
	if app == nil {
		return nil, pgx.ErrNoRows
	}
	if app.RowVersion != expectedVersion {
		return nil, utils.ErrRowVersionConflict
	}
	if app.Status != models.ApplicationStatusConfirmed {
		return nil, utils.ErrWrongStatus
	}
	app.WorkedConfirmedAt = &at
	app.Rating = rating
	app.RowVersion++
	return app, nil
}

func (f *fakeApplicationRepo) SetContractID(ctx context.Context, appID uuid.UUID, contractID uuid.UUID) error {
	app := f.apps[appID]
	if app == nil {
		return pgx.ErrNoRows
	}
	app.ContractID = &contractID
	return nil
}

func (f *fakeApplicationRepo) CancelShiftCascadeAtomic(
	ctx context.Context,
	shiftID uuid.UUID,
	expectedVersion int64,
	canceledAt time.Time,
	outcome func(app *models.Application, sh *models.Shift) (models.ApplicationStatusType, *float64),
) (*models.Shift, []*models.Application, error) {
	sh := f.shifts.shifts[shiftID]
	if sh == nil {
		return nil, nil, pgx.ErrNoRows
	}
	if sh.RowVersion != expectedVersion {
		return nil, nil, utils.ErrRowVersionConflict
	}
	if sh.Status == models.ShiftStatusClosed || sh.Status == models.ShiftStatusCancelled {
		return nil, nil, utils.ErrWrongStatus
	}

	var cancelled []*models.Application
	party := models.CancelPartyCompany
	for _, app := range f.apps {
		if app.ShiftID != shiftID {
			continue
		}
		if app.Status != models.ApplicationStatusPending && app.Status != models.ApplicationStatusConfirmed {
			continue
		}
		status, comp := outcome(app, sh)
		app.Status = status
		app.CanceledBy = &party
		app.CanceledAt = &canceledAt
		app.CompensationAmount = comp
		app.RowVersion++
		cancelled = append(cancelled, app)
	}

	sh.Status = models.ShiftStatusCancelled
	sh.ConfirmedCount = 0
	sh.RowVersion++
	return sh, cancelled, nil
}

// ---------------------------------------------------------------- contracts

type fakeContractRepo struct {
	docs map[uuid.UUID]*models.ContractDocument
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{docs: map[uuid.UUID]*models.ContractDocument{}}
}

func (f *fakeContractRepo) CreateIfNotExists(ctx context.Context, c *models.ContractDocument) (bool, error) {
	for _, d := range f.docs {
		if d.ApplicationID == c.ApplicationID {
			return false, nil
		}
	}
	c.RowVersion = 1
	f.docs[c.ID] = c
	return true, nil
}

func (f *fakeContractRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ContractDocument, error) {
	return f.docs[id], nil
}

func (f *fakeContractRepo) GetByApplicationID(ctx context.Context, applicationID uuid.UUID) (*models.ContractDocument, error) {
	for _, d := range f.docs {
		if d.ApplicationID == applicationID {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeContractRepo) UpdateIfVersion(ctx context.Context, c *models.ContractDocument, expectedVersion int64) (pgconn.CommandTag, error) {
	cur := f.docs[c.ID]
	if cur == nil || cur.RowVersion != expectedVersion {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	c.RowVersion = expectedVersion + 1
	f.docs[c.ID] = c
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeContractRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.ContractDocument) error) error {
	cur := f.docs[id]
	if cur == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(cur); err != nil {
		return err
	}
	cur.RowVersion++
	return nil
}

// ---------------------------------------------------------------- relations

type fakeRelationRepo struct {
	rels map[uuid.UUID]*models.CompanyWorkerRelation
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{rels: map[uuid.UUID]*models.CompanyWorkerRelation{}}
}

func (f *fakeRelationRepo) Upsert(ctx context.Context, rel *models.CompanyWorkerRelation) error {
	for _, r := range f.rels {
		if r.CompanyID == rel.CompanyID && r.WorkerID == rel.WorkerID {
			r.Favorite = rel.Favorite
			r.Priority = rel.Priority
			r.NarrowCollab = rel.NarrowCollab
			r.GroupID = rel.GroupID
			return nil
		}
	}
	f.rels[rel.ID] = rel
	return nil
}

func (f *fakeRelationRepo) GetByCompanyAndWorker(ctx context.Context, companyID, workerID uuid.UUID) (*models.CompanyWorkerRelation, error) {
	for _, r := range f.rels {
		if r.CompanyID == companyID && r.WorkerID == workerID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRelationRepo) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.CompanyWorkerRelation, error) {
	var out []*models.CompanyWorkerRelation
	for _, r := range f.rels {
		if r.WorkerID == workerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRelationRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*models.CompanyWorkerRelation, error) {
	var out []*models.CompanyWorkerRelation
	for _, r := range f.rels {
		if r.NarrowCollab && r.GroupID != nil && *r.GroupID == groupID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRelationRepo) IncrementWorkedCount(ctx context.Context, companyID, workerID uuid.UUID) error {
	for _, r := range f.rels {
		if r.CompanyID == companyID && r.WorkerID == workerID {
			r.WorkedShiftsCount++
			return nil
		}
	}
	f.rels[uuid.New()] = &models.CompanyWorkerRelation{
		ID:                uuid.New(),
		CompanyID:         companyID,
		WorkerID:          workerID,
		WorkedShiftsCount: 1,
	}
	return nil
}

// ---------------------------------------------------------------- collab

type fakeCollabRepo struct {
	groups  map[uuid.UUID]*models.CollabGroup
	schemes map[uuid.UUID]*models.CollabScheme
}

func newFakeCollabRepo() *fakeCollabRepo {
	return &fakeCollabRepo{
		groups:  map[uuid.UUID]*models.CollabGroup{},
		schemes: map[uuid.UUID]*models.CollabScheme{},
	}
}

func (f *fakeCollabRepo) CreateGroup(ctx context.Context, g *models.CollabGroup) error {
	g.RowVersion = 1
	f.groups[g.ID] = g
	return nil
}

func (f *fakeCollabRepo) GetGroupByID(ctx context.Context, id uuid.UUID) (*models.CollabGroup, error) {
	return f.groups[id], nil
}

func (f *fakeCollabRepo) CreateScheme(ctx context.Context, s *models.CollabScheme) error {
	s.RowVersion = 1
	f.schemes[s.ID] = s
	return nil
}

func (f *fakeCollabRepo) GetSchemeByID(ctx context.Context, id uuid.UUID) (*models.CollabScheme, error) {
	return f.schemes[id], nil
}

func (f *fakeCollabRepo) ListSchemesByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.CollabScheme, error) {
	var out []*models.CollabScheme
	for _, s := range f.schemes {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------- notifier

type fakeNotifier struct {
	sent []models.Notification
}

func (f *fakeNotifier) Notify(ctx context.Context, n models.Notification) {
	f.sent = append(f.sent, n)
}

func (f *fakeNotifier) kinds() []models.NotificationKind {
	out := make([]models.NotificationKind, 0, len(f.sent))
	for _, n := range f.sent {
		out = append(out, n.Kind)
	}
	return out
}

// ---------------------------------------------------------------- fixture

// fixture wires every service over the fakes with a controllable clock.
type fixture struct {
	companies *fakeCompanyRepo
	workers   *fakeWorkerRepo
	shifts    *fakeShiftRepo
	apps      *fakeApplicationRepo
	contracts *fakeContractRepo
	rels      *fakeRelationRepo
	collab    *fakeCollabRepo
	notifier  *fakeNotifier

	feed        *ShiftFeedService
	contractSvc *ContractService
	appSvc      *ApplicationService
	shiftSvc    *ShiftService
	collabSvc   *CollabSchedulerService
	companySvc  *CompanyService

	now time.Time
}

func newFixture(now time.Time) *fixture {
	f := &fixture{now: now}
	f.companies = newFakeCompanyRepo()
	f.workers = newFakeWorkerRepo()
	f.shifts = newFakeShiftRepo(f.companies)
	f.apps = newFakeApplicationRepo(f.shifts)
	f.contracts = newFakeContractRepo()
	f.rels = newFakeRelationRepo()
	f.collab = newFakeCollabRepo()
	f.notifier = &fakeNotifier{}

	clock := func() time.Time { return f.now }

	f.feed = NewShiftFeedService(f.shifts, f.workers, f.apps, f.rels, f.companies, DefaultWaveConfig())
	f.feed.now = clock

	f.contractSvc = NewContractService(f.contracts, f.apps, f.shifts, f.companies, f.notifier)
	f.contractSvc.now = clock

	f.appSvc = NewApplicationService(f.apps, f.shifts, f.workers, f.rels, f.feed, f.contractSvc, f.notifier)
	f.appSvc.now = clock

	f.shiftSvc = NewShiftService(f.shifts, f.companies, f.appSvc)
	f.shiftSvc.now = clock

	f.collabSvc = NewCollabSchedulerService(f.rels, f.collab, f.companies, f.workers, f.shifts, f.appSvc, DefaultWaveConfig())
	f.collabSvc.now = clock

	f.companySvc = NewCompanyService(f.companies, f.rels, f.collab, f.workers)

	return f
}

func (f *fixture) addCompany(region string, approved bool) *models.Company {
	c := &models.Company{
		ID:       uuid.New(),
		Name:     "Test company",
		Region:   region,
		Approved: approved,
	}
	_ = f.companies.Create(context.Background(), c)
	return c
}

func (f *fixture) addWorker(region string) *models.WorkerProfile {
	w := &models.WorkerProfile{
		ID:               uuid.New(),
		Email:            uuid.NewString() + "@example.com",
		FirstName:        "Test",
		LastName:         "Worker",
		Region:           region,
		Experience:       models.ExperienceBasic,
		ActivityScore:    50,
		ReliabilityScore: 50,
	}
	_ = f.workers.Create(context.Background(), w)
	return w
}

// addShift posts an OPEN PUBLIC shift starting at start with the given
// duration and rate, owned by company.
func (f *fixture) addShift(company *models.Company, start time.Time, hours, rate float64) *models.Shift {
	s := &models.Shift{
		ID:            uuid.New(),
		CompanyID:     company.ID,
		Title:         "Test shift",
		StartAt:       start,
		EndAt:         start.Add(time.Duration(hours * float64(time.Hour))),
		DurationHours: hours,
		HourlyRate:    rate,
		NeededWorkers: 2,
		WaveTier:      models.WaveTierPublic,
		WaveEnteredAt: f.now,
		NoticeWindow:  models.NoticeH24,
		Status:        models.ShiftStatusOpen,
	}
	_ = f.shifts.Create(context.Background(), s)
	return s
}

func (f *fixture) addPendingApplication(sh *models.Shift, w *models.WorkerProfile) *models.Application {
	a := &models.Application{
		ID:       uuid.New(),
		ShiftID:  sh.ID,
		WorkerID: w.ID,
		Status:   models.ApplicationStatusPending,
	}
	_, _ = f.apps.CreateIfNotExists(context.Background(), a)
	return a
}
