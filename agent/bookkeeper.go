package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
	"github.com/ArmandoRuiz13/RegistroMom/renderer"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert skills that you can get from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user runs a small resale business: goods bought in USD, sold in MXN,
			with sellers taking orders and buyers paying over time. Questions are
			about sales, what buyers still owe, and how each week went.

			Devise a plan of questions to ask the experts and come up with the best
			response to the user's request. Answer in the user's language.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewBookkeeper returns the expert in charge of reading the sales
// ledger. Its tools answer from the given book.
func NewBookkeeper(book *ventas.Book) *Expert {
	lib := []Function{summaryTool(book), salesTool(book), weeksTool(book), sellersTool(book)}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper, in charge of reading the sales ledger.
		Ask the Bookkeeper for totals, pending payments, weekly results and seller rankings.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the bookkeeper of a small resale business. The ledger holds one
				record per sale with its cost, commission, sale price, profit, payment
				status and the week it was registered in.

				Use the available tools to read the ledger:
				  - totals for a week or for everything
				  - the list of sales, with pending amounts
				  - the list of weeks with recorded sales
				  - the list of sellers with recorded sales

				Statuses are "debe" (nothing received), "abonado" (partially paid)
				and "pagado" (fully paid). Amounts are in MXN unless marked USD.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// weekArg reads the optional "week" argument of a tool call.
func weekArg(args map[string]any) (string, error) {
	iweek, ok := args["week"]
	if !ok {
		return "", nil
	}
	week, ok := iweek.(string)
	if !ok {
		return "", fmt.Errorf("argument 'week' is not a string as expected but %T", iweek)
	}
	return week, nil
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func outputResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

const weekArgDoc = `A week label in the form "17/11/25 al 23/11/25" (Monday al Sunday).
Omit it to cover the whole ledger. Use the Weeks tool to discover valid labels.`

func summaryTool(book *ventas.Book) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary computes the totals of the ledger: number of sales, total sold,
			commissions, profit, received and pending, plus a per-seller ranking.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"week": {Type: genai.TypeString, Description: weekArgDoc},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown summary with the totals table and the per-seller breakdown.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			week, err := weekArg(args)
			if err != nil {
				return errorResponse(id, "Summary", err)
			}
			l := book.Load(ctx)
			var filters []func(ventas.Record) bool
			title := "Summary"
			if week != "" {
				filters = append(filters, ventas.ByWeek(week))
				title = "Summary " + week
			}
			out := renderer.SummaryMarkdown(title, ventas.Summarize(l.Records(filters...))) +
				"\n" + renderer.SellersMarkdown("Sellers", ventas.GroupBySeller(l.Records(filters...)))
			return outputResponse(id, "Summary", out)
		},
	}
}

func salesTool(book *ventas.Book) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Sales",
			Description: `Sales lists the sale records with product, seller, price, amount
			received, pending amount and payment status.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"week": {Type: genai.TypeString, Description: weekArgDoc},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of sale records.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			week, err := weekArg(args)
			if err != nil {
				return errorResponse(id, "Sales", err)
			}
			l := book.Load(ctx)
			var filters []func(ventas.Record) bool
			title := "Sales"
			if week != "" {
				filters = append(filters, ventas.ByWeek(week))
				title = "Sales " + week
			}
			return outputResponse(id, "Sales", renderer.RecordsMarkdown(title, l.Records(filters...)))
		},
	}
}

func weeksTool(book *ventas.Book) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Weeks",
			Description: `Weeks lists every week label with recorded sales, oldest first.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown list of week labels.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			l := book.Load(ctx)
			return outputResponse(id, "Weeks", renderer.WeeksMarkdown(l.Weeks()))
		},
	}
}

func sellersTool(book *ventas.Book) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Sellers",
			Description: `Sellers lists every seller with recorded sales, in ledger order.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown list of seller names.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			l := book.Load(ctx)
			return outputResponse(id, "Sellers", renderer.SellerListMarkdown(l.Sellers()))
		},
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}
