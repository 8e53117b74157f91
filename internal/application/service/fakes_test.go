package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/slowlifemotors/garage-pos/internal/domain/repository"
)

// In-memory fakes for the repository interfaces. Error fields inject
// failures; maps stand in for tables.

type fakeLineRepo struct {
	byOrder   map[uuid.UUID][]entity.OrderLine
	createErr error
	updateErr error
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{byOrder: make(map[uuid.UUID][]entity.OrderLine)}
}

func (f *fakeLineRepo) CreateBatch(_ context.Context, lines []entity.OrderLine) error {
	if f.createErr != nil {
		return f.createErr
	}
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		f.byOrder[lines[i].OrderID] = append(f.byOrder[lines[i].OrderID], lines[i])
	}
	return nil
}

func (f *fakeLineRepo) Update(_ context.Context, line *entity.OrderLine) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	lines := f.byOrder[line.OrderID]
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i] = *line
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders      map[uuid.UUID]*entity.Order
	lines       *fakeLineRepo
	createErr   error
	updateErr   error
	hardDeletes int
	settled     []entity.Order
	settledErr  error
}

func newFakeOrderRepo(lines *fakeLineRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order), lines: lines}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(f.orders, id)
	f.hardDeletes++
	return nil
}

func (f *fakeOrderRepo) GetWithLines(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, exists := f.orders[id]
	if !exists {
		return nil, nil
	}
	o := *order
	if f.lines != nil {
		o.Lines = f.lines.byOrder[id]
	}
	return &o, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, staffID uuid.UUID, _ *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range f.orders {
		if o.StaffID == staffID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) ListSettled(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]entity.Order, error) {
	if f.settledErr != nil {
		return nil, f.settledErr
	}
	return f.settled, nil
}

type fakeVehicleRepo struct {
	vehicles map[uuid.UUID]*entity.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[uuid.UUID]*entity.Vehicle)}
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	return f.vehicles[id], nil
}

type fakeModRepo struct {
	mods map[uuid.UUID]*entity.Modification
}

func newFakeModRepo() *fakeModRepo {
	return &fakeModRepo{mods: make(map[uuid.UUID]*entity.Modification)}
}

func (f *fakeModRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Modification, error) {
	var out []entity.Modification
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if m, exists := f.mods[id]; exists {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeDiscountRepo struct {
	discounts map[uuid.UUID]*entity.Discount
}

func newFakeDiscountRepo() *fakeDiscountRepo {
	return &fakeDiscountRepo{discounts: make(map[uuid.UUID]*entity.Discount)}
}

func (f *fakeDiscountRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Discount, error) {
	return f.discounts[id], nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	getErr    error
	balances  map[uuid.UUID]int64
	updateErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: make(map[uuid.UUID]*entity.Customer),
		balances:  make(map[uuid.UUID]int64),
	}
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.customers[id], nil
}

func (f *fakeCustomerRepo) UpdateVoucherBalance(_ context.Context, id uuid.UUID, balance int64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.balances[id] = balance
	if c, exists := f.customers[id]; exists {
		c.VoucherAmount = balance
	}
	return nil
}

type fakeStaffRepo struct {
	staff  map[uuid.UUID]*entity.Staff
	getErr error
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[uuid.UUID]*entity.Staff)}
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.staff[id], nil
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*entity.Staff, error) {
	for _, s := range f.staff {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, nil
}

type fakePaymentRepo struct {
	latest  *entity.StaffPayment
	created []*entity.StaffPayment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.StaffPayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.created = append(f.created, payment)
	f.latest = payment
	return nil
}

func (f *fakePaymentRepo) GetLatestByStaff(_ context.Context, _ uuid.UUID) (*entity.StaffPayment, error) {
	return f.latest, nil
}

type fakeRaffleRepo struct {
	entries   []entity.RaffleSalesLog
	createErr error
	deleted   []uuid.UUID
}

func (f *fakeRaffleRepo) Create(_ context.Context, entry *entity.RaffleSalesLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeRaffleRepo) ListRange(_ context.Context, start, end time.Time) ([]entity.RaffleSalesLog, error) {
	var out []entity.RaffleSalesLog
	for _, e := range f.entries {
		if !e.SoldAt.Before(start) && e.SoldAt.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRaffleRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
		}
	}
	return nil
}

// fixedSource replays a preset stream of floats for deterministic draws.
type fixedSource struct {
	vals []float64
	i    int
}

func (s *fixedSource) Float64() (float64, error) {
	if s.i >= len(s.vals) {
		return 0, nil
	}
	v := s.vals[s.i]
	s.i++
	return v, nil
}
