package model

// All returns every persisted model in dependency order, ready for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&PasswordResetTokenModel{},
		&CategoryModel{},
		&TransactionModel{},
		&BudgetModel{},
		&EmailQueueModel{},
	}
}
