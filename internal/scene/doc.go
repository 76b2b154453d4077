// Package scene loads node trees described in YAML.
//
// A scene file has a single root node. Each node names its kind (box, row,
// column, grid, scroll, relative, text or list_item), its size, spacing,
// colors and children:
//
//	root:
//	  kind: column
//	  id: list
//	  width: 100%
//	  space: 8
//	  children:
//	    - kind: text
//	      text: hello
//	    - kind: box
//	      width: 200
//	      height: 50
//	      background: "#3366ff"
//
// A parsed [Scene] is an ace.Frontend, so it can be handed straight to
// PipelineContext.LoadPage.
package scene
