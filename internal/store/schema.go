package store

// Table DDL. Every statement is idempotent so Initialize can run on a
// populated store.
const (
	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL
);`

	createProducts = `CREATE TABLE IF NOT EXISTS products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    code TEXT UNIQUE NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    purchase_price TEXT NOT NULL,
    sale_price TEXT NOT NULL,
    stock INTEGER NOT NULL DEFAULT 0
);`

	createPurchases = `CREATE TABLE IF NOT EXISTS purchases (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id INTEGER NOT NULL REFERENCES products(id),
    quantity INTEGER NOT NULL,
    purchase_price TEXT NOT NULL,
    supplier TEXT,
    timestamp TEXT NOT NULL
);`

	createSales = `CREATE TABLE IF NOT EXISTS sales (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id INTEGER NOT NULL REFERENCES products(id),
    quantity INTEGER NOT NULL,
    sale_price TEXT NOT NULL,
    customer TEXT,
    timestamp TEXT NOT NULL
);`

	createStockMovements = `CREATE TABLE IF NOT EXISTS stock_movements (
    id TEXT PRIMARY KEY,
    product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    movement_type TEXT NOT NULL,
    quantity_change INTEGER NOT NULL,
    quantity_before INTEGER NOT NULL,
    quantity_after INTEGER NOT NULL,
    reference_id INTEGER,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`
)

const (
	idxProductsCategory   = `CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);`
	idxPurchasesProduct   = `CREATE INDEX IF NOT EXISTS idx_purchases_product ON purchases(product_id);`
	idxPurchasesTimestamp = `CREATE INDEX IF NOT EXISTS idx_purchases_timestamp ON purchases(timestamp);`
	idxSalesProduct       = `CREATE INDEX IF NOT EXISTS idx_sales_product ON sales(product_id);`
	idxSalesTimestamp     = `CREATE INDEX IF NOT EXISTS idx_sales_timestamp ON sales(timestamp);`
	idxMovementsProduct   = `CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements(product_id, created_at);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createCategories,
	createProducts,
	createPurchases,
	createSales,
	createStockMovements,
	idxProductsCategory,
	idxPurchasesProduct,
	idxPurchasesTimestamp,
	idxSalesProduct,
	idxSalesTimestamp,
	idxMovementsProduct,
}

// resetOrder deletes dependents before the rows they reference.
var resetOrder = []string{
	"stock_movements",
	"sales",
	"purchases",
	"products",
	"categories",
}

// Tables are the ledger tables, in creation order.
var Tables = []string{"categories", "products", "purchases", "sales", "stock_movements"}
