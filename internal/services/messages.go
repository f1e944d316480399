package services

// User-facing replies. The service speaks Portuguese end to end; keep these
// aligned with the interpreter prompt wording.
const (
	msgEmptyMessage = "Mensagem vazia."

	msgIDRegistered = "✅ ID registrado! Agora envie seu gasto, ex: 'Uber 25 reais'."
	msgAskForID     = "Por favor, envie primeiro seu ID de usuário (UUID)."

	msgInvalidCategory = "Categoria inválida. Tente novamente: alimentação, lazer, saúde, transporte, moradia, entretenimento ou outros."

	msgInvalidBudgetValue = "Valor inválido. Envie um número maior que zero, ex: 300."

	// %s = confirmed category, %s = optional budget alert
	msgCategoryConfirmed = "Gasto computado ✅ Categoria confirmada: %s.%s"

	msgSaveExpenseError = "❌ Erro ao salvar gasto. Tente novamente em instantes."
	msgSaveBudgetError  = "❌ Erro ao salvar orçamento. Tente novamente em instantes."

	// Budget setter replies; %s = category, %s = formatted limit.
	msgBudgetUpdated = "✅ Orçamento atualizado: %s → R$%s"
	msgBudgetDefined = "💰 Orçamento definido para %s: R$%s"

	// Leading space: the alert is appended to another reply.
	// %s = month-to-date total, %s = limit, %s = category.
	msgBudgetAlert = " ⚠️ Atenção: você já gastou %s de %s em %s neste mês!"
)
