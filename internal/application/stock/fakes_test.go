package stock_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sige-scm/sige-backend/internal/domain/entity"
	"github.com/sige-scm/sige-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeStore: almacén en memoria que implementa stock.TxRunner y los puertos de
// repositorio con la misma semántica de bloqueo que Postgres: el lock de fila
// tomado con GetForUpdate se mantiene hasta el Commit o Rollback de la
// transacción que lo tomó, y las escrituras de la transacción solo se vuelven
// visibles al comitear.
// ──────────────────────────────────────────────────────────────────────────────

var (
	errAppendForzado = errors.New("fallo simulado al insertar movimiento")
	errSaldoForzado  = errors.New("fallo simulado al crear saldo")
)

type fakeStore struct {
	mu        sync.Mutex
	products  map[string]entity.Product
	balances  map[string]entity.Balance
	movements []entity.Movement
	lastMovID int64
	rowLocks  map[string]*sync.Mutex

	// failAppend fuerza el fallo de Append dentro de la transacción
	// para verificar que el rollback no deja estado parcial.
	failAppend bool
	// failProductRead fuerza el fallo de la lectura de producto fuera de la
	// transacción (la alerta de mínimo debe degradar a false, nunca a error).
	failProductRead bool
	// failBalanceCreate fuerza el fallo del insert de saldo dentro de la
	// transacción de alta, para verificar que el producto tampoco persiste.
	failBalanceCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[string]entity.Product),
		balances: make(map[string]entity.Balance),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

// lockFor devuelve (creando si hace falta) el mutex de fila del SKU.
func (s *fakeStore) lockFor(sku string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rowLocks[sku]; !ok {
		s.rowLocks[sku] = &sync.Mutex{}
	}
	return s.rowLocks[sku]
}

// Run implementa stock.TxRunner: fn recibe repositorios atados a una transacción;
// error ⇒ rollback (se descartan las escrituras), nil ⇒ commit.
func (s *fakeStore) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
) error) error {
	tx := &fakeTx{
		store:    s,
		products: make(map[string]entity.Product),
		balances: make(map[string]entity.Balance),
	}
	if err := fn(&txProducts{tx}, &txBalances{tx}, &txMovements{tx}); err != nil {
		tx.rollback()
		return err
	}
	tx.commit()
	return nil
}

// productos / saldos / movimientos atados al pool (lecturas comprometidas)

func (s *fakeStore) Products() repository.ProductRepository   { return &storeProducts{s} }
func (s *fakeStore) Balances() repository.BalanceRepository   { return &storeBalances{s} }
func (s *fakeStore) Movements() repository.MovementRepository { return &storeMovements{s} }

// seedProduct registra directamente producto + saldo comiteados (sin pasar por el use case).
func (s *fakeStore) seedProduct(p entity.Product, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.SKU] = p
	s.balances[p.SKU] = entity.Balance{SKU: p.SKU, Quantity: qty, UpdatedAt: p.UpdatedAt}
}

// snapshot copia el estado comiteado para comparar antes/después.
func (s *fakeStore) snapshot() (map[string]entity.Balance, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balances := make(map[string]entity.Balance, len(s.balances))
	for sku, b := range s.balances {
		balances[sku] = b
	}
	return balances, len(s.movements)
}

// movementSum suma con signo los movimientos comiteados del SKU.
func (s *fakeStore) movementSum(sku string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int64
	for _, m := range s.movements {
		if m.SKU == sku {
			sum += m.SignedQuantity()
		}
	}
	return sum
}

// ── transacción ───────────────────────────────────────────────────────────────

type fakeTx struct {
	store     *fakeStore
	products  map[string]entity.Product
	balances  map[string]entity.Balance
	movements []entity.Movement
	held      []*sync.Mutex
}

func (tx *fakeTx) commit() {
	s := tx.store
	s.mu.Lock()
	for sku, p := range tx.products {
		s.products[sku] = p
	}
	for sku, b := range tx.balances {
		s.balances[sku] = b
	}
	s.movements = append(s.movements, tx.movements...)
	s.mu.Unlock()
	tx.releaseLocks()
}

func (tx *fakeTx) rollback() {
	tx.releaseLocks()
}

func (tx *fakeTx) releaseLocks() {
	for _, l := range tx.held {
		l.Unlock()
	}
	tx.held = nil
}

// lecturas dentro de la tx: primero lo escrito por la propia tx, luego lo comiteado

func (tx *fakeTx) getProduct(sku string) *entity.Product {
	if p, ok := tx.products[sku]; ok {
		return &p
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	if p, ok := tx.store.products[sku]; ok {
		return &p
	}
	return nil
}

func (tx *fakeTx) getBalance(sku string) *entity.Balance {
	if b, ok := tx.balances[sku]; ok {
		return &b
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	if b, ok := tx.store.balances[sku]; ok {
		return &b
	}
	return nil
}

// ── repositorios atados a la transacción ──────────────────────────────────────

type txProducts struct{ tx *fakeTx }

func (r *txProducts) Create(_ context.Context, p *entity.Product) error {
	r.tx.products[p.SKU] = *p
	return nil
}

func (r *txProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return r.tx.getProduct(sku), nil
}

func (r *txProducts) ListWithBalances(ctx context.Context) ([]repository.ProductWithBalance, error) {
	return (&storeProducts{r.tx.store}).ListWithBalances(ctx)
}

type txBalances struct{ tx *fakeTx }

func (r *txBalances) Get(_ context.Context, sku string) (*entity.Balance, error) {
	return r.tx.getBalance(sku), nil
}

// GetForUpdate replica el SELECT … FOR UPDATE: adquiere el lock de fila del SKU
// (bloqueando a cualquier otra tx que lo quiera) y recién entonces lee el saldo
// comiteado, que ya refleja lo que la tx anterior dejó al liberar el lock.
func (r *txBalances) GetForUpdate(_ context.Context, sku string) (*entity.Balance, error) {
	l := r.tx.store.lockFor(sku)
	l.Lock()
	r.tx.held = append(r.tx.held, l)
	return r.tx.getBalance(sku), nil
}

func (r *txBalances) Create(_ context.Context, b *entity.Balance) error {
	if r.tx.store.failBalanceCreate {
		return errSaldoForzado
	}
	r.tx.balances[b.SKU] = *b
	return nil
}

func (r *txBalances) Update(_ context.Context, b *entity.Balance) error {
	r.tx.balances[b.SKU] = *b
	return nil
}

type txMovements struct{ tx *fakeTx }

func (r *txMovements) Append(_ context.Context, m *entity.Movement) error {
	if r.tx.store.failAppend {
		return errAppendForzado
	}
	// El serial avanza aunque la tx luego haga rollback, igual que BIGSERIAL.
	r.tx.store.mu.Lock()
	r.tx.store.lastMovID++
	m.ID = r.tx.store.lastMovID
	r.tx.store.mu.Unlock()
	r.tx.movements = append(r.tx.movements, *m)
	return nil
}

func (r *txMovements) ListBySKU(ctx context.Context, sku string, limit, offset int) ([]*entity.Movement, error) {
	return (&storeMovements{r.tx.store}).ListBySKU(ctx, sku, limit, offset)
}

// ── repositorios atados al pool (estado comiteado) ────────────────────────────

type storeProducts struct{ s *fakeStore }

func (r *storeProducts) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.SKU] = *p
	return nil
}

func (r *storeProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failProductRead {
		return nil, errors.New("fallo simulado al leer producto")
	}
	if p, ok := r.s.products[sku]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *storeProducts) ListWithBalances(_ context.Context) ([]repository.ProductWithBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	skus := make([]string, 0, len(r.s.products))
	for sku := range r.s.products {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	out := make([]repository.ProductWithBalance, 0, len(skus))
	for _, sku := range skus {
		out = append(out, repository.ProductWithBalance{
			Product:          r.s.products[sku],
			Balance:          r.s.balances[sku].Quantity,
			BalanceUpdatedAt: r.s.balances[sku].UpdatedAt,
		})
	}
	return out, nil
}

type storeBalances struct{ s *fakeStore }

func (r *storeBalances) Get(_ context.Context, sku string) (*entity.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.balances[sku]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *storeBalances) GetForUpdate(ctx context.Context, sku string) (*entity.Balance, error) {
	return r.Get(ctx, sku)
}

func (r *storeBalances) Create(_ context.Context, b *entity.Balance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.balances[b.SKU] = *b
	return nil
}

func (r *storeBalances) Update(_ context.Context, b *entity.Balance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.balances[b.SKU] = *b
	return nil
}

type storeMovements struct{ s *fakeStore }

func (r *storeMovements) Append(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastMovID++
	m.ID = r.s.lastMovID
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *storeMovements) ListBySKU(_ context.Context, sku string, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matching := make([]*entity.Movement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].SKU == sku {
			m := r.s.movements[i]
			matching = append(matching, &m)
		}
	}
	if offset >= len(matching) {
		return []*entity.Movement{}, nil
	}
	matching = matching[offset:]
	if limit > 0 && limit < len(matching) {
		matching = matching[:limit]
	}
	return matching, nil
}

// ── verificación de consistencia sobre el estado comiteado ────────────────────

// CheckConsistency implementa repository.LedgerRepository comparando cada saldo
// contra la suma firmada de sus movimientos, igual que la consulta SQL real.
func (s *fakeStore) CheckConsistency(_ context.Context) ([]repository.LedgerMismatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := make(map[string]int64)
	for _, m := range s.movements {
		sums[m.SKU] += m.SignedQuantity()
	}
	skus := make([]string, 0, len(s.balances))
	for sku := range s.balances {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	var mismatches []repository.LedgerMismatch
	for _, sku := range skus {
		b := s.balances[sku]
		if b.Quantity != sums[sku] || b.Quantity < 0 {
			mismatches = append(mismatches, repository.LedgerMismatch{
				SKU:         sku,
				Balance:     b.Quantity,
				MovementSum: sums[sku],
			})
		}
	}
	return mismatches, nil
}

// corruptBalance pisa un saldo comiteado sin registrar movimiento (para
// provocar una inconsistencia detectable).
func (s *fakeStore) corruptBalance(sku string, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.balances[sku]
	b.Quantity = qty
	s.balances[sku] = b
}
