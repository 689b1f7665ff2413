// Package nodelink renders the belt feed network as a node-link diagram.
//
// # Overview
//
// Every belt becomes a node named by its cell ("x,y"). An edge runs from a
// belt to the belt in front of it when that belt takes its input from it, so
// a straight line of belts becomes a chain and a merge becomes a node with
// several incoming edges.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Nodes are pinned to their grid cell with pos attributes, so neato-style
// engines keep the spatial layout while the default dot layout ranks nodes
// left to right along the feed direction.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
