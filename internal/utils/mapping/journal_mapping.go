package mapping

import (
	"github.com/restopilot/resto_books_app/internal/core/domain"
	"github.com/restopilot/resto_books_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its persistence model.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		RestaurantID:     d.RestaurantID,
		EntryDate:        d.EntryDate,
		PieceNumber:      d.PieceNumber,
		Description:      d.Description,
		ReferenceType:    string(d.ReferenceType),
		ReferenceID:      d.ReferenceID,
		Status:           models.EntryStatus(d.Status),
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		Amount:           d.Amount,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a persistence JournalEntry to the domain.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		RestaurantID:     m.RestaurantID,
		EntryDate:        m.EntryDate,
		PieceNumber:      m.PieceNumber,
		Description:      m.Description,
		ReferenceType:    domain.ReferenceType(m.ReferenceType),
		ReferenceID:      m.ReferenceID,
		Status:           domain.EntryStatus(m.Status),
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		Amount:           m.Amount,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its persistence model.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:           d.LineID,
		EntryID:          d.EntryID,
		AccountID:        d.AccountID,
		Amount:           d.Amount,
		Side:             models.Side(d.Side),
		Notes:            d.Notes,
		RunningBalance:   d.RunningBalance,
		EntryDate:        d.EntryDate,
		EntryPieceNumber: d.EntryPieceNumber,
		EntryDescription: d.EntryDescription,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a persistence JournalLine to the domain.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:           m.LineID,
		EntryID:          m.EntryID,
		AccountID:        m.AccountID,
		Amount:           m.Amount,
		Side:             domain.Side(m.Side),
		Notes:            m.Notes,
		RunningBalance:   m.RunningBalance,
		EntryDate:        m.EntryDate,
		EntryPieceNumber: m.EntryPieceNumber,
		EntryDescription: m.EntryDescription,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of persistence JournalLines to the domain.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
