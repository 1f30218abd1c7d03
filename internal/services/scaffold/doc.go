// Package scaffold renders project skeletons from templates.
//
// A template is a directory holding a stencil.yaml manifest and a skeleton/
// tree. File contents ending in .tmpl and every path segment are rendered
// through text/template; everything else is copied verbatim.
package scaffold
