package internal

// Version is the wordwise release version
const Version = "0.3.0"
