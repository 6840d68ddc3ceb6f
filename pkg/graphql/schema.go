package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	svc "github.com/dd0wney/taxigraph/pkg/graph"
	"github.com/dd0wney/taxigraph/pkg/schema"
)

// BuildSchema builds the read-only GraphQL schema over the graph
// service: node lookups, airport listings, constrained path queries, and
// stats. Mutations stay on the JSON API, which is the contract the agent
// loop drives.
func BuildSchema(service *svc.Service) (graphql.Schema, error) {
	positionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Position",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float},
			"y": &graphql.Field{Type: graphql.Float},
		},
	})

	nodeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Node",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"airport": &graphql.Field{Type: graphql.String},
			"kind": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if node, ok := p.Source.(*schema.Node); ok {
						return string(node.Kind), nil
					}
					return nil, nil
				},
			},
			"name": &graphql.Field{Type: graphql.String},
			"position": &graphql.Field{
				Type: positionType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if node, ok := p.Source.(*schema.Node); ok {
						return map[string]any{"x": node.Position.X, "y": node.Position.Y}, nil
					}
					return nil, nil
				},
			},
		},
	})

	pathType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Path",
		Fields: graphql.Fields{
			"airport":       &graphql.Field{Type: graphql.String},
			"nodeIds":       &graphql.Field{Type: graphql.NewList(graphql.String)},
			"nodeNames":     &graphql.Field{Type: graphql.NewList(graphql.String)},
			"vias":          &graphql.Field{Type: graphql.NewList(graphql.String)},
			"holds":         &graphql.Field{Type: graphql.NewList(graphql.Boolean)},
			"totalDistance": &graphql.Field{Type: graphql.Float},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"airport": &graphql.Field{Type: graphql.String},
			"nodes":   &graphql.Field{Type: graphql.Int},
			"edges":   &graphql.Field{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"node": &graphql.Field{
				Type: nodeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(string)
					return service.GetNode(id)
				},
			},
			"nodes": &graphql.Field{
				Type: graphql.NewList(nodeType),
				Args: graphql.FieldConfigArgument{
					"airport": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					airport, _ := p.Args["airport"].(string)
					return service.ListNodes(airport)
				},
			},
			"airports": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return service.ListAirports()
				},
			},
			"findPath": &graphql.Field{
				Type: pathType,
				Args: graphql.FieldConfigArgument{
					"airport": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"from":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"to":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					airport, _ := p.Args["airport"].(string)
					from, _ := p.Args["from"].(string)
					to, _ := p.Args["to"].(string)
					return service.FindPath(airport, from, to)
				},
			},
			"stats": &graphql.Field{
				Type: statsType,
				Args: graphql.FieldConfigArgument{
					"airport": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					airport, _ := p.Args["airport"].(string)
					return service.Stats(airport)
				},
			},
		},
	})

	gqlSchema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return gqlSchema, nil
}
