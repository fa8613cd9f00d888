//	mockgen -source=internal/usecase/interfaces.go -destination=internal/usecase/mocks/mock_interfaces.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	domain "github.com/ledgerlite/ledgerlite/internal/domain"
	usecase "github.com/ledgerlite/ledgerlite/internal/usecase"
	decimal "github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"
)

// MockAccountRepository is a mock of AccountRepository interface.
type MockAccountRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAccountRepositoryMockRecorder
	isgomock struct{}
}

// MockAccountRepositoryMockRecorder is the mock recorder for MockAccountRepository.
type MockAccountRepositoryMockRecorder struct {
	mock *MockAccountRepository
}

// NewMockAccountRepository creates a new mock instance.
func NewMockAccountRepository(ctrl *gomock.Controller) *MockAccountRepository {
	mock := &MockAccountRepository{ctrl: ctrl}
	mock.recorder = &MockAccountRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAccountRepository) EXPECT() *MockAccountRepositoryMockRecorder {
	return m.recorder
}

// ActiveNumberExists mocks base method.
func (m *MockAccountRepository) ActiveNumberExists(ctx context.Context, number string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ActiveNumberExists", ctx, number)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ActiveNumberExists indicates an expected call of ActiveNumberExists.
func (mr *MockAccountRepositoryMockRecorder) ActiveNumberExists(ctx, number any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ActiveNumberExists", reflect.TypeOf((*MockAccountRepository)(nil).ActiveNumberExists), ctx, number)
}

// ApplyBalanceDelta mocks base method.
func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, tx usecase.Transaction, number string, delta decimal.Decimal, modifiedBy, approvedBy string, updatedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApplyBalanceDelta", ctx, tx, number, delta, modifiedBy, approvedBy, updatedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// ApplyBalanceDelta indicates an expected call of ApplyBalanceDelta.
func (mr *MockAccountRepositoryMockRecorder) ApplyBalanceDelta(ctx, tx, number, delta, modifiedBy, approvedBy, updatedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApplyBalanceDelta", reflect.TypeOf((*MockAccountRepository)(nil).ApplyBalanceDelta), ctx, tx, number, delta, modifiedBy, approvedBy, updatedAt)
}

// Create mocks base method.
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, account)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockAccountRepositoryMockRecorder) Create(ctx, account any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockAccountRepository)(nil).Create), ctx, account)
}

// GetActiveByName mocks base method.
func (m *MockAccountRepository) GetActiveByName(ctx context.Context, name string) (*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveByName", ctx, name)
	ret0, _ := ret[0].(*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveByName indicates an expected call of GetActiveByName.
func (mr *MockAccountRepositoryMockRecorder) GetActiveByName(ctx, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveByName", reflect.TypeOf((*MockAccountRepository)(nil).GetActiveByName), ctx, name)
}

// GetByNumber mocks base method.
func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByNumber", ctx, number)
	ret0, _ := ret[0].(*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByNumber indicates an expected call of GetByNumber.
func (mr *MockAccountRepositoryMockRecorder) GetByNumber(ctx, number any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByNumber", reflect.TypeOf((*MockAccountRepository)(nil).GetByNumber), ctx, number)
}

// GetByNumbersForUpdate mocks base method.
func (m *MockAccountRepository) GetByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByNumbersForUpdate", ctx, tx, numbers)
	ret0, _ := ret[0].([]*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByNumbersForUpdate indicates an expected call of GetByNumbersForUpdate.
func (mr *MockAccountRepositoryMockRecorder) GetByNumbersForUpdate(ctx, tx, numbers any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByNumbersForUpdate", reflect.TypeOf((*MockAccountRepository)(nil).GetByNumbersForUpdate), ctx, tx, numbers)
}

// ListActive mocks base method.
func (m *MockAccountRepository) ListActive(ctx context.Context) ([]*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListActive", ctx)
	ret0, _ := ret[0].([]*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListActive indicates an expected call of ListActive.
func (mr *MockAccountRepositoryMockRecorder) ListActive(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListActive", reflect.TypeOf((*MockAccountRepository)(nil).ListActive), ctx)
}

// ListAll mocks base method.
func (m *MockAccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAll", ctx)
	ret0, _ := ret[0].([]*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAll indicates an expected call of ListAll.
func (mr *MockAccountRepositoryMockRecorder) ListAll(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAll", reflect.TypeOf((*MockAccountRepository)(nil).ListAll), ctx)
}

// ListByCategories mocks base method.
func (m *MockAccountRepository) ListByCategories(ctx context.Context, categories []domain.AccountCategory) ([]*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByCategories", ctx, categories)
	ret0, _ := ret[0].([]*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByCategories indicates an expected call of ListByCategories.
func (mr *MockAccountRepositoryMockRecorder) ListByCategories(ctx, categories any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByCategories", reflect.TypeOf((*MockAccountRepository)(nil).ListByCategories), ctx, categories)
}

// SetArchived mocks base method.
func (m *MockAccountRepository) SetArchived(ctx context.Context, number string, archived bool, modifiedBy string, updatedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetArchived", ctx, number, archived, modifiedBy, updatedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetArchived indicates an expected call of SetArchived.
func (mr *MockAccountRepositoryMockRecorder) SetArchived(ctx, number, archived, modifiedBy, updatedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetArchived", reflect.TypeOf((*MockAccountRepository)(nil).SetArchived), ctx, number, archived, modifiedBy, updatedAt)
}

// Update mocks base method.
func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, account)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockAccountRepositoryMockRecorder) Update(ctx, account any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockAccountRepository)(nil).Update), ctx, account)
}

// MockJournalRepository is a mock of JournalRepository interface.
type MockJournalRepository struct {
	ctrl     *gomock.Controller
	recorder *MockJournalRepositoryMockRecorder
	isgomock struct{}
}

// MockJournalRepositoryMockRecorder is the mock recorder for MockJournalRepository.
type MockJournalRepositoryMockRecorder struct {
	mock *MockJournalRepository
}

// NewMockJournalRepository creates a new mock instance.
func NewMockJournalRepository(ctrl *gomock.Controller) *MockJournalRepository {
	mock := &MockJournalRepository{ctrl: ctrl}
	mock.recorder = &MockJournalRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockJournalRepository) EXPECT() *MockJournalRepositoryMockRecorder {
	return m.recorder
}

// CreateEntry mocks base method.
func (m *MockJournalRepository) CreateEntry(ctx context.Context, entry *domain.JournalEntry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateEntry", ctx, entry)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateEntry indicates an expected call of CreateEntry.
func (mr *MockJournalRepositoryMockRecorder) CreateEntry(ctx, entry any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateEntry", reflect.TypeOf((*MockJournalRepository)(nil).CreateEntry), ctx, entry)
}

// FindApprovedLineItemsByAccount mocks base method.
func (m *MockJournalRepository) FindApprovedLineItemsByAccount(ctx context.Context, accountNumber string) ([]domain.LineItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindApprovedLineItemsByAccount", ctx, accountNumber)
	ret0, _ := ret[0].([]domain.LineItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindApprovedLineItemsByAccount indicates an expected call of FindApprovedLineItemsByAccount.
func (mr *MockJournalRepositoryMockRecorder) FindApprovedLineItemsByAccount(ctx, accountNumber any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindApprovedLineItemsByAccount", reflect.TypeOf((*MockJournalRepository)(nil).FindApprovedLineItemsByAccount), ctx, accountNumber)
}

// FindApprovedLineItemsInRange mocks base method.
func (m *MockJournalRepository) FindApprovedLineItemsInRange(ctx context.Context, start, end time.Time, accountNumbers []string) ([]domain.LineItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindApprovedLineItemsInRange", ctx, start, end, accountNumbers)
	ret0, _ := ret[0].([]domain.LineItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindApprovedLineItemsInRange indicates an expected call of FindApprovedLineItemsInRange.
func (mr *MockJournalRepositoryMockRecorder) FindApprovedLineItemsInRange(ctx, start, end, accountNumbers any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindApprovedLineItemsInRange", reflect.TypeOf((*MockJournalRepository)(nil).FindApprovedLineItemsInRange), ctx, start, end, accountNumbers)
}

// GetEntry mocks base method.
func (m *MockJournalRepository) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEntry", ctx, id)
	ret0, _ := ret[0].(*domain.JournalEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetEntry indicates an expected call of GetEntry.
func (mr *MockJournalRepositoryMockRecorder) GetEntry(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEntry", reflect.TypeOf((*MockJournalRepository)(nil).GetEntry), ctx, id)
}

// GetEntryForUpdate mocks base method.
func (m *MockJournalRepository) GetEntryForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.JournalEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEntryForUpdate", ctx, tx, id)
	ret0, _ := ret[0].(*domain.JournalEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetEntryForUpdate indicates an expected call of GetEntryForUpdate.
func (mr *MockJournalRepositoryMockRecorder) GetEntryForUpdate(ctx, tx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEntryForUpdate", reflect.TypeOf((*MockJournalRepository)(nil).GetEntryForUpdate), ctx, tx, id)
}

// ListByStatus mocks base method.
func (m *MockJournalRepository) ListByStatus(ctx context.Context, status domain.EntryStatus, limit, offset int) ([]*domain.JournalEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByStatus", ctx, status, limit, offset)
	ret0, _ := ret[0].([]*domain.JournalEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByStatus indicates an expected call of ListByStatus.
func (mr *MockJournalRepositoryMockRecorder) ListByStatus(ctx, status, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByStatus", reflect.TypeOf((*MockJournalRepository)(nil).ListByStatus), ctx, status, limit, offset)
}

// MarkApproved mocks base method.
func (m *MockJournalRepository) MarkApproved(ctx context.Context, tx usecase.Transaction, id, approvedBy string, updatedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkApproved", ctx, tx, id, approvedBy, updatedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkApproved indicates an expected call of MarkApproved.
func (mr *MockJournalRepositoryMockRecorder) MarkApproved(ctx, tx, id, approvedBy, updatedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkApproved", reflect.TypeOf((*MockJournalRepository)(nil).MarkApproved), ctx, tx, id, approvedBy, updatedAt)
}

// MarkRejected mocks base method.
func (m *MockJournalRepository) MarkRejected(ctx context.Context, id, reason string, updatedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkRejected", ctx, id, reason, updatedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkRejected indicates an expected call of MarkRejected.
func (mr *MockJournalRepositoryMockRecorder) MarkRejected(ctx, id, reason, updatedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkRejected", reflect.TypeOf((*MockJournalRepository)(nil).MarkRejected), ctx, id, reason, updatedAt)
}

// MockUserRepository is a mock of UserRepository interface.
type MockUserRepository struct {
	ctrl     *gomock.Controller
	recorder *MockUserRepositoryMockRecorder
	isgomock struct{}
}

// MockUserRepositoryMockRecorder is the mock recorder for MockUserRepository.
type MockUserRepositoryMockRecorder struct {
	mock *MockUserRepository
}

// NewMockUserRepository creates a new mock instance.
func NewMockUserRepository(ctrl *gomock.Controller) *MockUserRepository {
	mock := &MockUserRepository{ctrl: ctrl}
	mock.recorder = &MockUserRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserRepository) EXPECT() *MockUserRepositoryMockRecorder {
	return m.recorder
}

// EmailsByRole mocks base method.
func (m *MockUserRepository) EmailsByRole(ctx context.Context, role domain.Role) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EmailsByRole", ctx, role)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EmailsByRole indicates an expected call of EmailsByRole.
func (mr *MockUserRepositoryMockRecorder) EmailsByRole(ctx, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EmailsByRole", reflect.TypeOf((*MockUserRepository)(nil).EmailsByRole), ctx, role)
}

// GetByID mocks base method.
func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockUserRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockUserRepository)(nil).GetByID), ctx, id)
}

// MockTransaction is a mock of Transaction interface.
type MockTransaction struct {
	ctrl     *gomock.Controller
	recorder *MockTransactionMockRecorder
	isgomock struct{}
}

// MockTransactionMockRecorder is the mock recorder for MockTransaction.
type MockTransactionMockRecorder struct {
	mock *MockTransaction
}

// NewMockTransaction creates a new mock instance.
func NewMockTransaction(ctrl *gomock.Controller) *MockTransaction {
	mock := &MockTransaction{ctrl: ctrl}
	mock.recorder = &MockTransactionMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTransaction) EXPECT() *MockTransactionMockRecorder {
	return m.recorder
}

// Commit mocks base method.
func (m *MockTransaction) Commit(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Commit", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Commit indicates an expected call of Commit.
func (mr *MockTransactionMockRecorder) Commit(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Commit", reflect.TypeOf((*MockTransaction)(nil).Commit), ctx)
}

// Rollback mocks base method.
func (m *MockTransaction) Rollback(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rollback", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Rollback indicates an expected call of Rollback.
func (mr *MockTransactionMockRecorder) Rollback(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rollback", reflect.TypeOf((*MockTransaction)(nil).Rollback), ctx)
}

// MockTransactionManager is a mock of TransactionManager interface.
type MockTransactionManager struct {
	ctrl     *gomock.Controller
	recorder *MockTransactionManagerMockRecorder
	isgomock struct{}
}

// MockTransactionManagerMockRecorder is the mock recorder for MockTransactionManager.
type MockTransactionManagerMockRecorder struct {
	mock *MockTransactionManager
}

// NewMockTransactionManager creates a new mock instance.
func NewMockTransactionManager(ctrl *gomock.Controller) *MockTransactionManager {
	mock := &MockTransactionManager{ctrl: ctrl}
	mock.recorder = &MockTransactionManagerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTransactionManager) EXPECT() *MockTransactionManagerMockRecorder {
	return m.recorder
}

// Begin mocks base method.
func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Begin", ctx)
	ret0, _ := ret[0].(usecase.Transaction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Begin indicates an expected call of Begin.
func (mr *MockTransactionManagerMockRecorder) Begin(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Begin", reflect.TypeOf((*MockTransactionManager)(nil).Begin), ctx)
}

// MockRetrier is a mock of Retrier interface.
type MockRetrier struct {
	ctrl     *gomock.Controller
	recorder *MockRetrierMockRecorder
	isgomock struct{}
}

// MockRetrierMockRecorder is the mock recorder for MockRetrier.
type MockRetrierMockRecorder struct {
	mock *MockRetrier
}

// NewMockRetrier creates a new mock instance.
func NewMockRetrier(ctrl *gomock.Controller) *MockRetrier {
	mock := &MockRetrier{ctrl: ctrl}
	mock.recorder = &MockRetrierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRetrier) EXPECT() *MockRetrierMockRecorder {
	return m.recorder
}

// Retry mocks base method.
func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Retry", ctx, operation)
	ret0, _ := ret[0].(error)
	return ret0
}

// Retry indicates an expected call of Retry.
func (mr *MockRetrierMockRecorder) Retry(ctx, operation any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Retry", reflect.TypeOf((*MockRetrier)(nil).Retry), ctx, operation)
}

// MockIDGenerator is a mock of IDGenerator interface.
type MockIDGenerator struct {
	ctrl     *gomock.Controller
	recorder *MockIDGeneratorMockRecorder
	isgomock struct{}
}

// MockIDGeneratorMockRecorder is the mock recorder for MockIDGenerator.
type MockIDGeneratorMockRecorder struct {
	mock *MockIDGenerator
}

// NewMockIDGenerator creates a new mock instance.
func NewMockIDGenerator(ctrl *gomock.Controller) *MockIDGenerator {
	mock := &MockIDGenerator{ctrl: ctrl}
	mock.recorder = &MockIDGeneratorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIDGenerator) EXPECT() *MockIDGeneratorMockRecorder {
	return m.recorder
}

// Generate mocks base method.
func (m *MockIDGenerator) Generate() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Generate")
	ret0, _ := ret[0].(string)
	return ret0
}

// Generate indicates an expected call of Generate.
func (mr *MockIDGeneratorMockRecorder) Generate() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Generate", reflect.TypeOf((*MockIDGenerator)(nil).Generate))
}

// MockNotifier is a mock of Notifier interface.
type MockNotifier struct {
	ctrl     *gomock.Controller
	recorder *MockNotifierMockRecorder
	isgomock struct{}
}

// MockNotifierMockRecorder is the mock recorder for MockNotifier.
type MockNotifierMockRecorder struct {
	mock *MockNotifier
}

// NewMockNotifier creates a new mock instance.
func NewMockNotifier(ctrl *gomock.Controller) *MockNotifier {
	mock := &MockNotifier{ctrl: ctrl}
	mock.recorder = &MockNotifierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNotifier) EXPECT() *MockNotifierMockRecorder {
	return m.recorder
}

// Send mocks base method.
func (m *MockNotifier) Send(ctx context.Context, to []string, subject, body string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, to, subject, body)
	ret0, _ := ret[0].(error)
	return ret0
}

// Send indicates an expected call of Send.
func (mr *MockNotifierMockRecorder) Send(ctx, to, subject, body any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockNotifier)(nil).Send), ctx, to, subject, body)
}

// MockDocumentStore is a mock of DocumentStore interface.
type MockDocumentStore struct {
	ctrl     *gomock.Controller
	recorder *MockDocumentStoreMockRecorder
	isgomock struct{}
}

// MockDocumentStoreMockRecorder is the mock recorder for MockDocumentStore.
type MockDocumentStoreMockRecorder struct {
	mock *MockDocumentStore
}

// NewMockDocumentStore creates a new mock instance.
func NewMockDocumentStore(ctrl *gomock.Controller) *MockDocumentStore {
	mock := &MockDocumentStore{ctrl: ctrl}
	mock.recorder = &MockDocumentStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDocumentStore) EXPECT() *MockDocumentStoreMockRecorder {
	return m.recorder
}

// Store mocks base method.
func (m *MockDocumentStore) Store(ctx context.Context, name, contentType string, data []byte) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Store", ctx, name, contentType, data)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Store indicates an expected call of Store.
func (mr *MockDocumentStoreMockRecorder) Store(ctx, name, contentType, data any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Store", reflect.TypeOf((*MockDocumentStore)(nil).Store), ctx, name, contentType, data)
}

// MockCache is a mock of Cache interface.
type MockCache struct {
	ctrl     *gomock.Controller
	recorder *MockCacheMockRecorder
	isgomock struct{}
}

// MockCacheMockRecorder is the mock recorder for MockCache.
type MockCacheMockRecorder struct {
	mock *MockCache
}

// NewMockCache creates a new mock instance.
func NewMockCache(ctrl *gomock.Controller) *MockCache {
	mock := &MockCache{ctrl: ctrl}
	mock.recorder = &MockCacheMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCache) EXPECT() *MockCacheMockRecorder {
	return m.recorder
}

// Delete mocks base method.
func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, key)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockCacheMockRecorder) Delete(ctx, key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockCache)(nil).Delete), ctx, key)
}

// Get mocks base method.
func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockCacheMockRecorder) Get(ctx, key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockCache)(nil).Get), ctx, key)
}

// Set mocks base method.
func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Set", ctx, key, value, ttl)
	ret0, _ := ret[0].(error)
	return ret0
}

// Set indicates an expected call of Set.
func (mr *MockCacheMockRecorder) Set(ctx, key, value, ttl any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Set", reflect.TypeOf((*MockCache)(nil).Set), ctx, key, value, ttl)
}
