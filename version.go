package md2nb

const VERSION = "v0.1.0"
