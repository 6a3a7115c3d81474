package urls

// Jenkins documentation pages referenced from troubleshooting hints.

// RemoteAccessAPI explains API tokens and basic-auth access to the
// Jenkins REST endpoints this tool calls.
const RemoteAccessAPI = "https://www.jenkins.io/doc/book/using/remote-access-api/"

// ManagingSecurity covers the security realm, including creating and
// deleting accounts in Jenkins' own user database.
const ManagingSecurity = "https://www.jenkins.io/doc/book/security/managing-security/"

// RoleStrategyPlugin is the plugin that serves the assignRole endpoint.
const RoleStrategyPlugin = "https://plugins.jenkins.io/role-strategy/"

// ReverseProxy covers broken redirects and unreachable servers behind a proxy.
const ReverseProxy = "https://www.jenkins.io/doc/book/system-administration/reverse-proxy-configuration-troubleshooting/"
