package reminders

import (
	"fmt"
	"time"
)

// months in pt-BR; the audience of the reminders is Brazilian
var ptBRMonths = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDatePTBR renders a date like "05 de março de 2026".
func FormatDatePTBR(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), ptBRMonths[t.Month()-1], t.Year())
}

// GameReminderMessage renders the reminder text. Title, time and location
// are reused verbatim from the schedule record.
func GameReminderMessage(title, date, gameTime, location string) string {
	return fmt.Sprintf(
		"🏐 Lembrete de Jogo!\n\n%s\n📅 %s\n⏰ %s\n📍 %s\n\nNão esqueça, até lá!",
		title, date, gameTime, location,
	)
}
