package pricing

// Скидка за длительную аренду офиса:
// от 12 месяцев - 15%, от 6 до 11 - 10%, меньше 6 - без скидки.
const (
	longTermMonths = 12
	midTermMonths  = 6
)

// MonthlyPrice возвращает эффективную цену месяца аренды с учётом скидки.
// Цена в минимальных единицах (копейках), целочисленная арифметика с
// округлением вниз.
func MonthlyPrice(basePrice, durationMonths int) int {
	if basePrice <= 0 {
		return 0
	}
	switch {
	case durationMonths >= longTermMonths:
		return basePrice * 85 / 100
	case durationMonths >= midTermMonths:
		return basePrice * 90 / 100
	default:
		return basePrice
	}
}

// RentTotal - полная стоимость аренды за весь срок
func RentTotal(basePrice, durationMonths int) int {
	if durationMonths <= 0 {
		return 0
	}
	return MonthlyPrice(basePrice, durationMonths) * durationMonths
}

// BookingAmount считает сумму бронирования: цена тарифа за единицу,
// умноженная на длительность, минус процент промокода (0 - без скидки).
func BookingAmount(tariffPrice, durationHours, discountPercent int) int {
	if tariffPrice <= 0 || durationHours <= 0 {
		return 0
	}
	amount := tariffPrice * durationHours
	if discountPercent > 0 && discountPercent <= 100 {
		amount = amount * (100 - discountPercent) / 100
	}
	return amount
}
