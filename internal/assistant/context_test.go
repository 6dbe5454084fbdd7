package assistant

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ishistore/backend/internal/models"
)

func TestBuildContextBlockEmpty(t *testing.T) {
	block := BuildContextBlock(models.ChatContext{})
	for _, want := range []string{"PRODUCTS:\n- none", "CUSTOMER:\n- anonymous", "TICKETS:\n- none"} {
		if !strings.Contains(block, want) {
			t.Fatalf("expected %q in block:\n%s", want, block)
		}
	}
}

func TestBuildContextBlockCapsProducts(t *testing.T) {
	var products []models.Product
	for i := 0; i < 35; i++ {
		products = append(products, models.Product{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Product %d", i),
			Price:    9.99,
			Category: "misc",
		})
	}
	block := BuildContextBlock(models.ChatContext{Products: products})
	if strings.Count(block, "id:p") != 20 {
		t.Fatalf("expected 20 product lines, got %d", strings.Count(block, "id:p"))
	}
	if !strings.Contains(block, "id:p0\n") || strings.Contains(block, "id:p20\n") {
		t.Fatalf("expected first 20 products in source order:\n%s", block)
	}
}

func TestBuildContextBlockCapsTickets(t *testing.T) {
	var tickets []models.SupportTicket
	for i := 0; i < 15; i++ {
		subject := fmt.Sprintf("Issue %d", i)
		tickets = append(tickets, models.SupportTicket{
			ID:      fmt.Sprintf("t%d", i),
			Status:  "open",
			Subject: &subject,
		})
	}
	block := BuildContextBlock(models.ChatContext{Tickets: tickets})
	if strings.Count(block, "id:t") != 10 {
		t.Fatalf("expected 10 ticket lines, got %d", strings.Count(block, "id:t"))
	}
}

func TestBuildContextBlockCustomerFields(t *testing.T) {
	name := "Ada"
	block := BuildContextBlock(models.ChatContext{
		Customer: &models.Customer{ID: "c1", Name: &name},
	})
	if !strings.Contains(block, "- Ada |  |  | id:c1") {
		t.Fatalf("expected customer line with empty placeholders:\n%s", block)
	}
	if strings.Contains(block, "anonymous") {
		t.Fatalf("did not expect anonymous marker")
	}
}

func TestBuildContextBlockSingleLineItems(t *testing.T) {
	block := BuildContextBlock(models.ChatContext{
		Products: []models.Product{{ID: "p1", Name: "Multi\nline\r\nname", Price: 1, Category: "a"}},
	})
	for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		if strings.ContainsAny(line, "\r") {
			t.Fatalf("line contains carriage return: %q", line)
		}
	}
	if !strings.Contains(block, "Multi line  name") && !strings.Contains(block, "Multi line") {
		t.Fatalf("newlines in fields should be flattened:\n%s", block)
	}
}
