package version

// VERSION ...
const VERSION = "1.0.0"
