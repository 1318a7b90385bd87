// ABOUTME: Graphviz portfolio graphs
// ABOUTME: Clients linked to their policies and opportunities, rendered as DOT
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

type GraphGenerator struct {
	store store.Store
}

func NewGraphGenerator(s store.Store) *GraphGenerator {
	return &GraphGenerator{store: s}
}

// GenerateClientGraph draws one client with their policies and opportunities.
func (g *GraphGenerator) GenerateClientGraph(clientID string) (string, error) {
	client, err := g.store.Client(clientID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch client: %w", err)
	}
	if client == nil {
		return "", fmt.Errorf("client not found: %s", clientID)
	}
	policies, err := g.store.PoliciesByClient(clientID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch policies: %w", err)
	}
	opps, err := g.store.OpportunitiesByClient(clientID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch opportunities: %w", err)
	}

	return render(fmt.Sprintf("%s portfolio", client.FullName()), func(graph *cgraph.Graph) error {
		return addClient(graph, *client, policies, opps)
	})
}

// GeneratePortfolioGraph draws every client with their policies and opportunities.
func (g *GraphGenerator) GeneratePortfolioGraph() (string, error) {
	ds, err := store.Snapshot(g.store)
	if err != nil {
		return "", fmt.Errorf("failed to read stores: %w", err)
	}

	return render("Agency portfolio", func(graph *cgraph.Graph) error {
		for _, c := range ds.Clients {
			var policies []models.Policy
			for _, p := range ds.Policies {
				if p.ClientID == c.ID {
					policies = append(policies, p)
				}
			}
			var opps []models.Opportunity
			for _, o := range ds.Opportunities {
				if o.ClientID == c.ID {
					opps = append(opps, o)
				}
			}
			if err := addClient(graph, c, policies, opps); err != nil {
				return err
			}
		}
		return nil
	})
}

func render(label string, build func(*cgraph.Graph) error) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel(label)
	graph.SetLayout("dot")
	graph.SetRankDir(cgraph.LRRank)

	if err := build(graph); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func addClient(graph *cgraph.Graph, c models.Client, policies []models.Policy, opps []models.Opportunity) error {
	clientNode, err := graph.CreateNodeByName("client_" + c.ID)
	if err != nil {
		return fmt.Errorf("failed to create client node: %w", err)
	}
	clientNode.SetLabel(fmt.Sprintf("%s\n(%s)", c.FullName(), c.Status))
	clientNode.SetShape("box")
	clientNode.SetStyle("filled")
	clientNode.SetFillColor("lightblue")

	policyNodes := make(map[string]*cgraph.Node, len(policies))
	for _, p := range policies {
		node, err := graph.CreateNodeByName("policy_" + p.ID)
		if err != nil {
			return fmt.Errorf("failed to create policy node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s\n%s/yr", p.PolicyNumber, models.HumanizeType(p.Type), assistant.Money(p.Premium)))
		node.SetShape("ellipse")
		node.SetStyle("filled")
		if p.Status == models.PolicyStatusActive {
			node.SetFillColor("lightgreen")
		} else {
			node.SetFillColor("lightgrey")
		}
		policyNodes[p.ID] = node

		edge, err := graph.CreateEdgeByName("holds_"+p.ID, clientNode, node)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel(p.Status)
	}

	for _, o := range opps {
		node, err := graph.CreateNodeByName("opportunity_" + o.ID)
		if err != nil {
			return fmt.Errorf("failed to create opportunity node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n(%s, %s)", o.Title, o.Priority, o.Status))
		node.SetShape("diamond")
		node.SetStyle("filled")
		node.SetFillColor("lightyellow")

		from := clientNode
		if o.RelatedPolicyID != nil {
			if pn, ok := policyNodes[*o.RelatedPolicyID]; ok {
				from = pn
			}
		}
		edge, err := graph.CreateEdgeByName("opportunity_"+o.ID, from, node)
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetStyle("dashed")
	}
	return nil
}
