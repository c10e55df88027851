package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (lower(email));`,
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		address TEXT,
		contact_email VARCHAR(255),
		contact_phone VARCHAR(64),
		manager_ids TEXT NOT NULL DEFAULT '[]',
		project_ids TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_companies_contact_email ON companies (contact_email);`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		company_id UUID NOT NULL REFERENCES companies(id),
		description TEXT,
		start_date TIMESTAMPTZ,
		end_date TIMESTAMPTZ,
		status VARCHAR(16) NOT NULL DEFAULT 'planning',
		budget NUMERIC(18,2) NOT NULL DEFAULT 0,
		manager_ids TEXT NOT NULL DEFAULT '[]',
		team_ids TEXT NOT NULL DEFAULT '[]',
		manpower_allocated INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_company_id ON projects (company_id);`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(128) NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_categories_name ON categories (lower(name));`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		type VARCHAR(16) NOT NULL,
		amount NUMERIC(18,2) NOT NULL CHECK (amount >= 0),
		description TEXT,
		category VARCHAR(128) NOT NULL DEFAULT 'other',
		project_id UUID NOT NULL REFERENCES projects(id),
		date TIMESTAMPTZ NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		approval_status VARCHAR(16) NOT NULL DEFAULT 'pending',
		rejection_reason TEXT,
		created_by_id UUID NOT NULL REFERENCES users(id),
		approved_by_id UUID REFERENCES users(id),
		approved_at TIMESTAMPTZ,
		rejected_by_id UUID REFERENCES users(id),
		rejected_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_project_id ON transactions (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions (type);`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_approval_status ON transactions (approval_status);`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions (category);`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date);`,
	`CREATE TABLE IF NOT EXISTS attachments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		transaction_id UUID NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
		file_name VARCHAR(255) NOT NULL,
		content_type VARCHAR(128),
		size BIGINT NOT NULL DEFAULT 0,
		data BYTEA,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_attachments_transaction_id ON attachments (transaction_id);`,
	`CREATE TABLE IF NOT EXISTS resources (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		role VARCHAR(128),
		email VARCHAR(255),
		phone VARCHAR(64),
		hourly_rate NUMERIC(12,2) NOT NULL DEFAULT 0,
		skills TEXT NOT NULL DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS allocations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		resource_id UUID NOT NULL REFERENCES resources(id),
		project_id UUID NOT NULL REFERENCES projects(id),
		hours_allocated NUMERIC(12,2) NOT NULL DEFAULT 0,
		start_date TIMESTAMPTZ,
		end_date TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_project_id ON allocations (project_id);`,
	// Authoritative guard for resource exclusivity: the service-level
	// pre-check can race, this index cannot.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_allocations_active_resource ON allocations (resource_id) WHERE is_active;`,
	`CREATE TABLE IF NOT EXISTS attendances (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		allocation_id UUID NOT NULL REFERENCES allocations(id),
		date DATE NOT NULL,
		check_in TIMESTAMPTZ NOT NULL,
		check_out TIMESTAMPTZ NOT NULL,
		total_hours NUMERIC(8,2) NOT NULL,
		notes TEXT,
		created_by_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_allocation_date ON attendances (allocation_id, date);`,
	`CREATE TABLE IF NOT EXISTS material_requests (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id),
		item_name VARCHAR(255) NOT NULL,
		quantity NUMERIC(12,2) NOT NULL,
		unit VARCHAR(32),
		urgency VARCHAR(16) NOT NULL DEFAULT 'medium',
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		notes TEXT,
		rejection_reason TEXT,
		requested_by_id UUID NOT NULL REFERENCES users(id),
		reviewed_by_id UUID REFERENCES users(id),
		reviewed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_material_requests_status ON material_requests (status);`,
	`CREATE TABLE IF NOT EXISTS material_purchases (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		request_id UUID REFERENCES material_requests(id),
		project_id UUID NOT NULL REFERENCES projects(id),
		item_name VARCHAR(255) NOT NULL,
		quantity NUMERIC(12,2) NOT NULL,
		unit VARCHAR(32),
		unit_price NUMERIC(18,2) NOT NULL,
		total_amount NUMERIC(18,2) NOT NULL,
		supplier VARCHAR(255),
		purchase_date TIMESTAMPTZ NOT NULL,
		transaction_id UUID,
		created_by_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_material_purchases_request_id ON material_purchases (request_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
